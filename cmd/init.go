package cmd

import (
	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.toml, config.lock, and account.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		if _, err := launcher.Init(cfg.GameDir); err != nil {
			return err
		}
		pterm.Success.Println("Initialized config in", cfg.GameDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
