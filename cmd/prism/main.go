package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prismui/prism/cmd/prism/commands"
	"github.com/prismui/prism/config"
	"github.com/prismui/prism/logger"
)

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Prism - universal component generation engine",
	Long: `Prism - design tokens and component specifications in, platform
components out.

Prism compiles component specifications (CSM documents) against a versioned
design-token store and generates accessible, typed components for every
registered platform target.

Available commands:
  generate - Generate components for one or all platforms
  ls       - List published artifacts in the registry
  tokens   - Inspect token sets and transformed bindings
  validate - Parse and validate source documents without generating
  watch    - Regenerate on source changes
  config   - Show the effective configuration
  version  - Show version information

Examples:
  prism generate                          # All components, all platforms
  prism generate button --platform react  # One component, one platform
  prism ls                                # Published artifacts
  prism tokens show 2026.08.0             # One token revision
  prism watch                             # Regenerate on save`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.LsCmd)
	rootCmd.AddCommand(commands.TokensCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
