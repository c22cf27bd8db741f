package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newChampionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "champions",
		Short: "Champion catalog commands",
	}

	cmd.AddCommand(newChampionsSearchCmd())
	cmd.AddCommand(newChampionsShowCmd())
	cmd.AddCommand(newChampionsStatusCmd())

	return cmd
}

func newChampionsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search champions by id or name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/champions"
			if len(args) > 0 {
				path += "?q=" + url.QueryEscape(args[0])
			}

			var result []Champion
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChampionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <champion-id>",
		Short: "Show a champion's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Champion

			if err := client.Get(fmt.Sprintf("/api/v1/champions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChampionsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the catalog dataset status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CatalogStatus

			if err := client.Get("/api/v1/catalog", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
