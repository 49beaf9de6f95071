package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/prismui/prism/config"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/variant"
)

// ValidateCmd parses and validates source documents without generating
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate CSM and token documents without generating",
	Long: `Parse every source document, run structural validation, and compile
each component's variant resolver. Nothing is generated or published.

Examples:
  prism validate`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Loading already enforces strict parsing and structural validation
	svc, cleanup, err := newService(cfg, tokens.ThemeLight)
	if err != nil {
		return err
	}
	defer cleanup()

	failures := 0
	for _, id := range svc.Components() {
		c, _ := svc.Component(id)
		if _, err := variant.Compile(c); err != nil {
			pterm.Error.Printfln("%s: %v", id, err)
			failures++
			continue
		}
		pterm.Success.Printfln("%s@%s ok", id, c.Version)
	}
	for _, revision := range svc.Revisions() {
		set, err := svc.TokenSet(revision)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("tokens %s ok (%d tokens)", revision, set.Len())
	}

	if failures > 0 {
		return errors.Newf("%d component(s) failed validation", failures)
	}
	return nil
}
