package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomShowCmd())
	cmd.AddCommand(newRoomInfoCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomKickCmd())
	cmd.AddCommand(newRoomTeamCmd())
	cmd.AddCommand(newRoomCloseCmd())
	cmd.AddCommand(newRoomHeartbeatCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var hostName, gameName, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"host_name": hostName}
			if gameName != "" {
				req["game_name"] = gameName
			}
			if password != "" {
				req["password"] = password
			}

			var result Room

			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&hostName, "name", "", "Your display name (required)")
	cmd.Flags().StringVar(&gameName, "game", "", "Game name (default: server default)")
	cmd.Flags().StringVar(&password, "password", "", "Room password (default: none)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show the full room state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <code>",
		Short: "Show the join-screen preview of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomInfo

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/info", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			if password != "" {
				req["password"] = password
			}

			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your display name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Room password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/leave", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left room %s", args[0]))
			return nil
		},
	}
}

func newRoomKickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kick <code> <player-id>",
		Short: "Remove a player from the room (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/players/%s", args[0], args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Kicked %s from room %s", args[1], args[0]))
			return nil
		},
	}
}

func newRoomTeamCmd() *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "team <code> <player-id>",
		Short: "Move a player to a team (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"team": team}

			if err := client.Patch(fmt.Sprintf("/api/v1/rooms/%s/players/%s/team", args[0], args[1]), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Moved %s to %s", args[1], team))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Destination team: team1 or team2 (required)")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newRoomCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <code>",
		Short: "Close the room (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Closed room %s", args[0]))
			return nil
		},
	}
}

func newRoomHeartbeatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat <code>",
		Short: "Refresh your presence in the room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/heartbeat", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("ok")
			return nil
		},
	}
}
