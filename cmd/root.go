package cmd

import (
	"context"
	"os"

	"github.com/funny233-github/mc-launcher/internal/launcher"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// CLIConfig captures the flags shared by every subcommand.
type CLIConfig struct {
	GameDir string
}

var rootCmd = &cobra.Command{
	Use:   "mc-launcher",
	Short: "A content-addressed, parallel Minecraft installer and launcher",
	Long:  `mc-launcher resolves version manifests, installs assets/libraries/natives in parallel, and manages mods against a declarative config.`,
}

// Execute initializes the root command tree and delegates to Cobra for
// argument parsing and subcommand dispatch.
func Execute() {
	// Disable pterm rich output and enforce RawOutput when stdout is not a terminal (e.g., CI, piped output)
	if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
		pterm.DisableStyling()
		pterm.RawOutput = true
	}
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "C", ".", "working directory holding config.toml/config.lock/account.toml")
}

func parseConfig(cmd *cobra.Command) CLIConfig {
	dir, _ := cmd.Flags().GetString("dir")
	return CLIConfig{GameDir: dir}
}

// openHandle reads the config handle rooted at cfg.GameDir.
func openHandle(cfg CLIConfig) (*launcher.Handle, error) {
	return launcher.Read(cfg.GameDir)
}

// withHandle runs fn against the handle rooted at cfg.GameDir, flushing it
// afterward regardless of fn's outcome, and returns whichever error fired
// first.
func withHandle(cfg CLIConfig, fn func(ctx context.Context, h *launcher.Handle) error) error {
	h, err := openHandle(cfg)
	if err != nil {
		return err
	}
	runErr := fn(context.Background(), h)
	if flushErr := h.Flush(); flushErr != nil && runErr == nil {
		return flushErr
	}
	return runErr
}
