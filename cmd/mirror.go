package cmd

import (
	"context"
	"fmt"

	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mirrorCmd = &cobra.Command{
	Use:       "mirror {official|bmclapi}",
	Short:     "Select the mirror set used to resolve upstream URLs",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"official", "bmclapi"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		return withHandle(cfg, func(_ context.Context, h *launcher.Handle) error {
			h.SpecMut().MirrorSet = args[0]
			pterm.Success.Printf("Mirror set to %q\n", args[0])
			return nil
		})
	},
}

func mirrorsFor(name string) (launcher.MirrorSet, error) {
	mirrors, ok := launcher.MirrorsByName(name)
	if !ok {
		return launcher.MirrorSet{}, fmt.Errorf("unknown mirror set %q", name)
	}
	return mirrors, nil
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
}
