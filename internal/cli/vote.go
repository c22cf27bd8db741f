package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Reroll vote commands",
	}

	cmd.AddCommand(newVoteCastCmd())
	cmd.AddCommand(newVoteStatusCmd())
	cmd.AddCommand(newVoteResetCmd())
	cmd.AddCommand(newVoteClearTeamCmd())

	return cmd
}

func newVoteCastCmd() *cobra.Command {
	var channel, player string
	var off bool

	cmd := &cobra.Command{
		Use:   "cast <code>",
		Short: "Cast or retract a reroll vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := player
			if target == "" {
				target = cfg.ParticipantID
			}

			req := map[string]any{
				"channel": channel,
				"active":  !off,
			}

			var result VoteStatus
			path := fmt.Sprintf("/api/v1/rooms/%s/players/%s/vote", args[0], target)
			if err := client.Put(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "globalReroll", "Vote channel: globalReroll, team1Reroll, team2Reroll")
	cmd.Flags().StringVar(&player, "player", "", "Target player id (host only, default: yourself)")
	cmd.Flags().BoolVar(&off, "off", false, "Retract the vote instead of casting it")

	return cmd
}

func newVoteStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <code>",
		Short: "Show vote standings for all channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result VoteStatus

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/votes", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newVoteResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <code>",
		Short: "Clear all reroll votes (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/votes", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Votes cleared")
			return nil
		},
	}
}

func newVoteClearTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-team <code> <team>",
		Short: "Clear one team's global reroll votes (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/votes/%s", args[0], args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Cleared %s votes", args[1]))
			return nil
		},
	}
}
