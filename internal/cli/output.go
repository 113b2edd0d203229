package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateResult:
		o.printCreateResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case Session:
		o.printSession(v)
	case SessionList:
		o.printSessionList(v)
	case GuessResult:
		o.printGuessResult(v)
	case ScoresResult:
		o.printScoresResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionPlayer response type (matches API)
type SessionPlayer struct {
	ConnID string `json:"conn_id"`
	Name   string `json:"name"`
}

// Session response type
type Session struct {
	Pin          string          `json:"pin"`
	Status       string          `json:"status"`
	Host         string          `json:"host"`
	Players      []SessionPlayer `json:"players"`
	RoundsTotal  int             `json:"rounds_total,omitempty"`
	RoundsPlayed int             `json:"rounds_played,omitempty"`
	RoundActive  bool            `json:"round_active"`
}

// CreateResult response type
type CreateResult struct {
	Pin    string `json:"pin"`
	ConnID string `json:"conn_id"`
}

// JoinResult response type
type JoinResult struct {
	Pin     string  `json:"pin"`
	Name    string  `json:"name"`
	Session Session `json:"session"`
}

// SessionSummary response type
type SessionSummary struct {
	Pin     string   `json:"pin"`
	Status  string   `json:"status"`
	Players []string `json:"players"`
}

// SessionList response type
type SessionList struct {
	Sessions []SessionSummary `json:"sessions"`
}

// GuessResult response type
type GuessResult struct {
	Outcome string         `json:"outcome"`
	Winner  string         `json:"winner,omitempty"`
	Word    string         `json:"word,omitempty"`
	Scores  map[string]int `json:"scores,omitempty"`
}

// ScoresResult response type
type ScoresResult struct {
	Pin    string         `json:"pin"`
	Scores map[string]int `json:"scores"`
}

// HealthResult response type
type HealthResult struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (o *Output) printCreateResult(r CreateResult) {
	fmt.Printf("Game: %s\n", r.Pin)
	fmt.Printf("Connection: %s\n", r.ConnID)
}

func (o *Output) printJoinResult(r JoinResult) {
	fmt.Printf("Joined game %s as %s\n", r.Pin, r.Name)
	o.printSession(r.Session)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Game: %s\n", s.Pin)
	fmt.Printf("Status: %s\n", s.Status)
	if s.RoundsTotal > 0 {
		fmt.Printf("Rounds: %d/%d\n", s.RoundsPlayed, s.RoundsTotal)
	}
	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		hostStr := ""
		if p.ConnID == s.Host {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s%s\n", p.Name, hostStr)
	}
}

func (o *Output) printSessionList(l SessionList) {
	if len(l.Sessions) == 0 {
		fmt.Println("No active games")
		return
	}
	fmt.Printf("Active games (%d):\n", len(l.Sessions))
	for _, s := range l.Sessions {
		fmt.Printf("  %s  %-12s %s\n", s.Pin, s.Status, strings.Join(s.Players, ", "))
	}
}

func (o *Output) printGuessResult(r GuessResult) {
	switch r.Outcome {
	case "correct":
		fmt.Printf("Correct! The word was %q\n", r.Word)
		if len(r.Scores) > 0 {
			o.printScoreTable(r.Scores)
		}
	case "incorrect":
		fmt.Println("Incorrect, keep guessing")
	case "already_claimed":
		fmt.Println("Too late, someone already got it")
	case "drawer_cannot_guess":
		fmt.Println("You are drawing this round")
	case "no_active_round":
		fmt.Println("No round in progress")
	default:
		fmt.Printf("Outcome: %s\n", r.Outcome)
	}
}

func (o *Output) printScoresResult(r ScoresResult) {
	fmt.Printf("Game: %s\n", r.Pin)
	o.printScoreTable(r.Scores)
}

func (o *Output) printScoreTable(scores map[string]int) {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Println("Scores:")
	for _, name := range names {
		fmt.Printf("  %s: %d points\n", name, scores[name])
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Active games: %d\n", h.Sessions)
}
