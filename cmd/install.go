package cmd

import (
	"context"

	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// pterm progress-bar sink, bridging the executor's ProgressSink interface
// onto a pterm progress bar (or a raw log line when styling is disabled).
type ptermSink struct {
	bar *pterm.ProgressbarPrinter
}

func (s *ptermSink) AdvanceOne() {
	if s.bar != nil {
		s.bar.Increment()
	}
}

func (s *ptermSink) SetCurrentLabel(text string) {
	if s.bar != nil {
		s.bar.UpdateTitle(text)
	} else if pterm.RawOutput {
		pterm.Println(text)
	}
}

func newProgressSink(total int, title string) (*ptermSink, func()) {
	if pterm.RawOutput || total == 0 {
		return &ptermSink{}, func() {}
	}
	bar, _ := pterm.DefaultProgressbar.WithTotal(total).WithTitle(title).Start()
	return &ptermSink{bar: bar}, func() { _, _ = bar.Stop() }
}

var installCmd = &cobra.Command{
	Use:   "install [version]",
	Short: "Install a game version, optionally merging a Fabric loader",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		fabricVersion, _ := cmd.Flags().GetString("fabric")

		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			spec := h.SpecMut()
			if len(args) > 0 {
				spec.GameVersion = args[0]
			}
			if fabricVersion != "" {
				spec.Loader = launcher.LoaderSpec{Kind: "fabric", Version: fabricVersion}
			}

			mirrors, err := mirrorsFor(spec.MirrorSet)
			if err != nil {
				return err
			}

			spinner, _ := pterm.DefaultSpinner.Start("Resolving version manifest...")
			sink, stop := newProgressSink(0, "Installing")
			defer stop()

			_, err = launcher.InstallMC(ctx, nil, mirrors, spec.GameDirectory, spec.GameVersion, spec.Loader, sink)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}
			spinner.Success("Installed " + spec.GameVersion)
			return nil
		})
	},
}

func init() {
	installCmd.Flags().String("fabric", "", "merge this Fabric loader version onto the game version")
	rootCmd.AddCommand(installCmd)
}
