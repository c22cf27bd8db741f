package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Pool rolling commands (host only)",
	}

	cmd.AddCommand(newRollBothCmd())
	cmd.AddCommand(newRollTeamCmd())

	return cmd
}

func newRollBothCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "both <code>",
		Short: "Roll fresh pools for both teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Pool

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/roll", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRollTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team <code> <team>",
		Short: "Roll a fresh pool for one team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Pool

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/roll/%s", args[0], args[1]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
