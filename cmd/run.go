package cmd

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the configured game version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parseConfig(cmd)
		return withHandle(cfg, func(ctx context.Context, h *launcher.Handle) error {
			spec := h.Spec()
			account := h.Account()

			versionPath := filepath.Join(spec.GameDirectory, "versions", spec.GameVersion, spec.GameVersion+".json")
			var version launcher.Version
			if err := readJSONFile(versionPath, &version); err != nil {
				return &launcher.LaunchArgsError{Err: err}
			}

			rc := launcher.DefaultRuntimeConfig(spec, account, &version)
			jvmArgs := launcher.BuildLaunchArgs(&version, rc)

			pterm.Info.Println("Launching", spec.GameVersion)
			proc := exec.CommandContext(ctx, spec.JavaPath, jvmArgs...)
			proc.Dir = spec.GameDirectory
			proc.Stdout = os.Stdout
			proc.Stderr = os.Stderr
			proc.Stdin = os.Stdin
			return proc.Run()
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
