package commands

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/prismui/prism/config"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/tokens"
)

// WatchCmd regenerates components when source documents change
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate on source changes",
	Long: `Watch the component and token directories and regenerate whenever a
source document is saved. Save bursts coalesce through the configured
debounce window.

Examples:
  prism watch
  prism watch --platform react`,
	RunE: runWatch,
}

var watchPlatformFlag string

func init() {
	WatchCmd.Flags().StringVarP(&watchPlatformFlag, "platform", "p", "", "Restrict to one platform target")
	WatchCmd.Flags().StringVarP(&generateThemeFlag, "theme", "t", "light", "Token theme")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(cfg, tokens.Theme(generateThemeFlag))
	if err != nil {
		return err
	}
	defer cleanup()

	var platforms []generate.PlatformID
	if watchPlatformFlag != "" {
		platforms = []generate.PlatformID{generate.PlatformID(watchPlatformFlag)}
	}

	debounce := time.Duration(cfg.Pipeline.WatchDebounceMillis) * time.Millisecond
	pterm.Info.Printfln("watching %s and %s (debounce %s)",
		cfg.Sources.ComponentsDir, cfg.Sources.TokensDir, debounce)

	err = svc.Watch(cmd.Context(), cfg.Sources.ComponentsDir, cfg.Sources.TokensDir, debounce, platforms)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
