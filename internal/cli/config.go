package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	ConnID     string
	ConnIDFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("SKETCHDASH_SERVER", "http://localhost:8080"),
		ConnID:     os.Getenv("SKETCHDASH_CONN_ID"),
		ConnIDFile: getEnvOrDefault("SKETCHDASH_CONN_ID_FILE", defaultConnIDFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadConnID loads the connection ID from file if not already set
func (c *Config) LoadConnID() error {
	if c.ConnID != "" {
		return nil
	}

	data, err := os.ReadFile(c.ConnIDFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No conn ID file is fine
		}
		return err
	}

	c.ConnID = string(data)
	return nil
}

// SaveConnID saves the connection ID to the conn ID file
func (c *Config) SaveConnID(connID string) error {
	c.ConnID = connID

	dir := filepath.Dir(c.ConnIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.ConnIDFile, []byte(connID), 0600)
}

func defaultConnIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sketchdash/conn"
	}
	return filepath.Join(home, ".sketchdash", "conn")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
