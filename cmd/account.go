package cmd

import (
	"context"

	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account <name>",
	Short: "Set the active offline account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		return withHandle(cfg, func(_ context.Context, h *launcher.Handle) error {
			h.AddOfflineAccount(args[0])
			pterm.Success.Printf("Active account set to %q\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}
