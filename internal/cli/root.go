package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sketchctl",
		Short: "CLI tool for the sketchdash game API",
		Long: `sketchctl is a CLI tool for interacting with the sketchdash JSON API.

It supports all API operations including game creation, joining,
guessing, and real-time SSE event streaming.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load connection ID from file if not provided via flag/env
			if err := cfg.LoadConnID(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SKETCHDASH_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConnID, "conn-id", cfg.ConnID, "Connection ID (env: SKETCHDASH_CONN_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConnIDFile, "conn-id-file", cfg.ConnIDFile, "Connection ID file path (env: SKETCHDASH_CONN_ID_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
