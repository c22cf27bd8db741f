package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aramroll/aramroll/internal/dependencies/clock"
	"github.com/aramroll/aramroll/internal/dependencies/random"
	"github.com/aramroll/aramroll/internal/services/identity"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "aramroll",
		Short: "CLI tool for the ARAM roll room API",
		Long: `aramroll is a CLI tool for interacting with the ARAM roll room JSON API.

It supports room lifecycle, team moves, champion bans, pool rolling,
reroll voting, and real-time SSE event streaming. A stable participant
id is generated on first use and persisted locally.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Resolve participant id: flag/env wins, otherwise the persisted
			// per-install identity
			if cfg.ParticipantID == "" {
				ids := identity.New(cfg.IDFile, clock.New(), random.New())
				id, err := ids.CurrentID()
				if err != nil {
					return err
				}
				cfg.ParticipantID = string(id)
			}

			client = NewClient(cfg.ServerURL, cfg.ParticipantID)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ARAMROLL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.ParticipantID, "participant", cfg.ParticipantID, "Participant id (env: ARAMROLL_PARTICIPANT_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.IDFile, "id-file", cfg.IDFile, "Identity file path (env: ARAMROLL_ID_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newBanCmd())
	rootCmd.AddCommand(newVoteCmd())
	rootCmd.AddCommand(newRollCmd())
	rootCmd.AddCommand(newChampionsCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newWhoamiCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the participant id in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			out.PrintMessage(cfg.ParticipantID)
			return nil
		},
	}
}
