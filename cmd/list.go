package cmd

import (
	"context"
	"fmt"

	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game versions or loader versions",
}

var listMCCmd = &cobra.Command{
	Use:       "mc {all|release|snapshot}",
	Short:     "List published game versions",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"all", "release", "snapshot"},
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind := launcher.VersionAll
		switch args[0] {
		case "release":
			kind = launcher.VersionRelease
		case "snapshot":
			kind = launcher.VersionSnapshot
		}

		client := launcher.NewDefaultHTTPClient()
		idx, err := launcher.FetchVersionIndex(context.Background(), client, launcher.OfficialMirrors())
		if err != nil {
			return err
		}

		versions := idx.List(kind)
		if limit > 0 && len(versions) > limit {
			versions = versions[:limit]
		}
		for _, v := range versions {
			fmt.Println(v)
		}
		return nil
	},
}

var listLoaderCmd = &cobra.Command{
	Use:   "loader",
	Short: "List mod loader versions",
}

var listLoaderFabricCmd = &cobra.Command{
	Use:   "fabric",
	Short: "List published Fabric loader versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client := launcher.NewDefaultHTTPClient()
		loaders, err := launcher.FetchFabricLoaders(context.Background(), client, launcher.OfficialMirrors())
		if err != nil {
			return err
		}
		if limit > 0 && len(loaders) > limit {
			loaders = loaders[:limit]
		}

		tableData := pterm.TableData{{"Version", "Build", "Stable"}}
		for _, l := range loaders {
			stable := "false"
			if l.Stable {
				stable = "true"
			}
			tableData = append(tableData, []string{l.Version, fmt.Sprint(l.Build), stable})
		}
		if pterm.RawOutput {
			for _, l := range loaders {
				fmt.Println(l.Version)
			}
			return nil
		}
		return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	},
}

func init() {
	listMCCmd.Flags().Int("limit", 0, "limit the number of results (0 = unlimited)")
	listLoaderFabricCmd.Flags().Int("limit", 0, "limit the number of results (0 = unlimited)")

	listLoaderCmd.AddCommand(listLoaderFabricCmd)
	listCmd.AddCommand(listMCCmd, listLoaderCmd)
	rootCmd.AddCommand(listCmd)
}
