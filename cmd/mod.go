package cmd

import (
	"context"
	"fmt"

	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Manage mods against the declarative config",
}

var modAddCmd = &cobra.Command{
	Use:   "add <name> [version]",
	Short: "Add a mod to the spec and install it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		local, _ := cmd.Flags().GetBool("local")
		configOnly, _ := cmd.Flags().GetBool("config-only")
		version := ""
		if len(args) > 1 {
			version = args[1]
		}

		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			resolver := launcher.NewResolver(h, nil)
			if err := resolver.Add(ctx, args[0], version, local, configOnly); err != nil {
				return err
			}
			pterm.Success.Printf("Added mod %q\n", args[0])
			return nil
		})
	},
}

var modRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a mod from the spec and lock, deleting its file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			resolver := launcher.NewResolver(h, nil)
			if err := resolver.Remove(args[0]); err != nil {
				return err
			}
			pterm.Success.Printf("Removed mod %q\n", args[0])
			return nil
		})
	},
}

var modUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-resolve every remote mod to its newest matching version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		configOnly, _ := cmd.Flags().GetBool("config-only")
		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			resolver := launcher.NewResolver(h, nil)
			return resolver.Update(ctx, configOnly)
		})
	},
}

var modSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-resolve mods whose spec version disagrees with the lock",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		configOnly, _ := cmd.Flags().GetBool("config-only")
		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			resolver := launcher.NewResolver(h, nil)
			return resolver.Sync(ctx, configOnly)
		})
	},
}

var modInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download every locked, remotely resolved mod",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			resolver := launcher.NewResolver(h, nil)
			return resolver.Install(ctx, nil)
		})
	},
}

var modCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop stale lock entries and delete disabled mod files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		return withHandle(cfg, func(_ context.Context, h *launcher.Handle) error {
			resolver := launcher.NewResolver(h, nil)
			return resolver.Clean()
		})
	},
}

var modSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the mod registry for projects matching the current loader/version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		limit, _ := cmd.Flags().GetInt("limit")

		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			resolver := launcher.NewResolver(h, nil)
			results, err := resolver.Search(ctx, args[0], limit)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("%s: %s\n", r.Slug, r.Description)
			}
			return nil
		})
	},
}

func init() {
	modAddCmd.Flags().Bool("local", false, "reference an already-present file under mods/ instead of resolving remotely")
	modAddCmd.Flags().BoolP("config-only", "c", false, "edit the spec/lock without installing")
	modUpdateCmd.Flags().BoolP("config-only", "c", false, "edit the lock without installing")
	modSyncCmd.Flags().BoolP("config-only", "c", false, "edit the lock without installing")
	modSearchCmd.Flags().Int("limit", 0, "limit the number of results (0 or above 100 = 100)")

	modCmd.AddCommand(modAddCmd, modRemoveCmd, modUpdateCmd, modSyncCmd, modInstallCmd, modCleanCmd, modSearchCmd)
	rootCmd.AddCommand(modCmd)
}
