package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ban",
		Short: "Champion ban commands",
	}

	cmd.AddCommand(newBanSetCmd())
	cmd.AddCommand(newBanClearCmd())

	return cmd
}

// banTarget resolves the target player id: explicit flag, or self
func banTarget(player string) string {
	if player != "" {
		return player
	}
	return cfg.ParticipantID
}

func newBanSetCmd() *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "set <code> <champion-id>",
		Short: "Ban a champion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"champion_id": args[1]}

			path := fmt.Sprintf("/api/v1/rooms/%s/players/%s/ban", args[0], banTarget(player))
			if err := client.Put(path, req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Banned %s", args[1]))
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Target player id (host only, default: yourself)")

	return cmd
}

func newBanClearCmd() *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "clear <code>",
		Short: "Clear a champion ban",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"champion_id": ""}

			path := fmt.Sprintf("/api/v1/rooms/%s/players/%s/ban", args[0], banTarget(player))
			if err := client.Put(path, req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Ban cleared")
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Target player id (host only, default: yourself)")

	return cmd
}
