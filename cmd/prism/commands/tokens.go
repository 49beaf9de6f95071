package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/prismui/prism/config"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/tokens/transform"
)

// TokensCmd inspects token sets and their transformed bindings
var TokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Inspect token sets and transformed bindings",
	Long: `Inspect loaded token revisions and their platform bindings.

Examples:
  prism tokens ls                            # Loaded revisions
  prism tokens show 2026.08.0                # Tokens of one revision
  prism tokens render 2026.08.0 --kind scss  # Rendered binding source`,
}

var tokensLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List loaded token revisions",
	RunE:  runTokensLs,
}

var tokensShowCmd = &cobra.Command{
	Use:   "show <revision>",
	Short: "Show the tokens of one revision",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokensShow,
}

var tokensRenderCmd = &cobra.Command{
	Use:   "render <revision>",
	Short: "Render a revision's binding source (stylesheet or SCSS map)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokensRender,
}

var (
	tokensThemeFlag string
	tokensKindFlag  string
)

func init() {
	TokensCmd.AddCommand(tokensLsCmd)
	TokensCmd.AddCommand(tokensShowCmd)
	TokensCmd.AddCommand(tokensRenderCmd)

	tokensShowCmd.Flags().StringVarP(&tokensThemeFlag, "theme", "t", "light", "Token theme")
	tokensRenderCmd.Flags().StringVarP(&tokensThemeFlag, "theme", "t", "light", "Token theme")
	tokensRenderCmd.Flags().StringVarP(&tokensKindFlag, "kind", "k", "cascading", "Binding kind (cascading, scss)")
}

func loadTokensService(theme tokens.Theme) (*serviceHandle, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	svc, cleanup, err := newService(cfg, theme)
	if err != nil {
		return nil, err
	}
	return &serviceHandle{svc: svc, cleanup: cleanup}, nil
}

func runTokensLs(cmd *cobra.Command, args []string) error {
	h, err := loadTokensService(tokens.ThemeLight)
	if err != nil {
		return err
	}
	defer h.cleanup()

	for _, revision := range h.svc.Revisions() {
		set, err := h.svc.TokenSet(revision)
		if err != nil {
			return err
		}
		fmt.Printf("%s  (%d tokens, hash %s)\n", revision, set.Len(), set.Hash())
	}
	return nil
}

func runTokensShow(cmd *cobra.Command, args []string) error {
	theme := tokens.Theme(tokensThemeFlag)
	h, err := loadTokensService(theme)
	if err != nil {
		return err
	}
	defer h.cleanup()

	set, err := h.svc.TokenSet(args[0])
	if err != nil {
		return err
	}

	rows := pterm.TableData{{"TOKEN", "TYPE", "VALUE", "CONTRAST"}}
	for _, name := range set.Names() {
		tok, _ := set.Lookup(name)
		value, _ := tok.Value(theme)
		contrast := ""
		if tok.Contrast != nil {
			contrast = fmt.Sprintf("%.1f:1 vs %s", tok.Contrast.Ratio, tok.Contrast.Against)
		}
		rows = append(rows, []string{name, string(tok.Type), value, contrast})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runTokensRender(cmd *cobra.Command, args []string) error {
	theme := tokens.Theme(tokensThemeFlag)
	h, err := loadTokensService(theme)
	if err != nil {
		return err
	}
	defer h.cleanup()

	set, err := h.svc.TokenSet(args[0])
	if err != nil {
		return err
	}
	b, err := transform.Transform(set, transform.Kind(tokensKindFlag), theme)
	if err != nil {
		return err
	}
	fmt.Print(b.Source())
	return nil
}
