package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/prismui/prism/config"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/pipeline"
	"github.com/prismui/prism/tokens"
)

// GenerateCmd generates components and publishes the artifacts
var GenerateCmd = &cobra.Command{
	Use:   "generate [component]",
	Short: "Generate components for the registered platforms",
	Long: `Generate platform components from CSM documents and the token store.

Without arguments, generates every loaded component for every registered
platform. With a component id, generates that component only.

Examples:
  prism generate                          # Everything
  prism generate button                   # One component, all platforms
  prism generate button --platform react  # One (component, platform) pair
  prism generate --revision 2026.07.0     # Pin a token revision`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generatePlatformFlag string
	generateRevisionFlag string
	generateThemeFlag    string
	generateOutFlag      string
)

func init() {
	GenerateCmd.Flags().StringVarP(&generatePlatformFlag, "platform", "p", "", "Restrict to one platform target")
	GenerateCmd.Flags().StringVarP(&generateRevisionFlag, "revision", "r", "", "Token revision (default: latest loaded)")
	GenerateCmd.Flags().StringVarP(&generateThemeFlag, "theme", "t", "light", "Token theme")
	GenerateCmd.Flags().StringVarP(&generateOutFlag, "out", "o", "", "Output directory (default: from configuration)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	outDir := generateOutFlag
	if outDir == "" {
		outDir = cfg.Output.Dir
	}

	svc, cleanup, err := newService(cfg, tokens.Theme(generateThemeFlag))
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()

	if len(args) == 1 && generatePlatformFlag != "" {
		ref, err := svc.Generate(ctx, args[0], generate.PlatformID(generatePlatformFlag), generateRevisionFlag)
		if err != nil {
			return err
		}
		if err := writeArtifact(ctx, svc, ref, outDir); err != nil {
			return err
		}
		pterm.Success.Printfln("published %s (%s)", ref.Key.String(), ref.Filename)
		return nil
	}

	var platforms []generate.PlatformID
	if generatePlatformFlag != "" {
		platforms = []generate.PlatformID{generate.PlatformID(generatePlatformFlag)}
	}

	var report *pipeline.Report
	if len(args) == 1 {
		report, err = svc.RunComponent(ctx, args[0], platforms, generateRevisionFlag)
	} else {
		report, err = svc.Run(ctx, platforms, generateRevisionFlag)
	}
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		if res.Err != nil || res.Key == nil {
			continue
		}
		ref := &pipeline.ArtifactRef{Key: *res.Key}
		if err := writeArtifact(ctx, svc, ref, outDir); err != nil {
			return err
		}
	}

	if report.Succeeded() == len(report.Results) {
		pterm.Success.Println(report.Summary())
		return nil
	}
	pterm.Warning.Println(report.Summary())
	return errors.Newf("%d of %d targets failed", len(report.Results)-report.Succeeded(), len(report.Results))
}

// writeArtifact writes one published artifact under out/<platform>/
func writeArtifact(ctx context.Context, svc *pipeline.Service, ref *pipeline.ArtifactRef, outDir string) error {
	entry, err := svc.Entry(ctx, ref)
	if err != nil {
		return err
	}
	dir := filepath.Join(outDir, entry.Artifact.Key.Platform)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	path := filepath.Join(dir, entry.Artifact.Filename)
	if err := os.WriteFile(path, []byte(entry.Artifact.Source), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
