package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameLeaveCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameScoresCmd())
	cmd.AddCommand(newGameDestroyCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CreateResult

			body := map[string]string{}
			if cfg.ConnID != "" {
				body["conn_id"] = cfg.ConnID
			}

			if err := client.Post("/api/v1/sessions", body, &result); err != nil {
				return err
			}

			// Remember the connection ID so later commands act as
			// the same player
			if err := cfg.SaveConnID(result.ConnID); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionList

			if err := client.Get("/api/v1/sessions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <pin>",
		Short: "Get game details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := args[0]

			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", pin), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <pin> <name>",
		Short: "Join a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, name := args[0], args[1]

			if err := requireConnID(); err != nil {
				return err
			}

			body := map[string]string{
				"conn_id": cfg.ConnID,
				"name":    name,
			}

			var result JoinResult

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/join", pin), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <pin>",
		Short: "Leave a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := args[0]

			if err := requireConnID(); err != nil {
				return err
			}

			body := map[string]string{"conn_id": cfg.ConnID}

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/leave", pin), body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left game %s", pin))
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <pin>",
		Short: "Start a game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := args[0]

			if err := requireConnID(); err != nil {
				return err
			}

			body := map[string]string{"conn_id": cfg.ConnID}

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/start", pin), body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s started", pin))
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <pin> <word>",
		Short: "Submit a guess for the current round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, word := args[0], args[1]

			if err := requireConnID(); err != nil {
				return err
			}

			body := map[string]string{
				"conn_id": cfg.ConnID,
				"guess":   word,
			}

			var result GuessResult

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/guess", pin), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <pin>",
		Short: "Show the score table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := args[0]

			var result ScoresResult

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s/scores", pin), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <pin>",
		Short: "Destroy a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := args[0]

			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", pin)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s destroyed", pin))
			return nil
		},
	}
}

func requireConnID() error {
	if cfg.ConnID == "" {
		return fmt.Errorf("no connection ID; run 'game create' first or pass --conn-id")
	}
	return nil
}
