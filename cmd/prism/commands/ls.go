package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/prismui/prism/config"
	"github.com/prismui/prism/registry"
)

// LsCmd lists published artifacts
var LsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List published artifacts",
	Long: `List every artifact in the registry with its validation status.

Examples:
  prism ls                 # All entries
  prism ls --component button`,
	RunE: runLs,
}

var lsComponentFlag string

func init() {
	LsCmd.Flags().StringVarP(&lsComponentFlag, "component", "c", "", "Filter by component id")
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := registry.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := registry.Migrate(db); err != nil {
		return err
	}

	entries, err := registry.NewStore(db).List(cmd.Context())
	if err != nil {
		return err
	}

	rows := pterm.TableData{
		{"COMPONENT", "PLATFORM", "VERSION", "TOKENS", "STATUS", "DEPRECATED", "CREATED"},
	}
	shown := 0
	for _, e := range entries {
		if lsComponentFlag != "" && e.Artifact.Key.Component != lsComponentFlag {
			continue
		}
		deprecated := ""
		if e.Deprecated {
			deprecated = "yes"
		}
		rows = append(rows, []string{
			e.Artifact.Key.Component,
			e.Artifact.Key.Platform,
			e.Artifact.Key.CSMVersion,
			e.Artifact.Key.TokenRevision,
			string(e.Status),
			deprecated,
			e.CreatedAt.Format("2006-01-02 15:04"),
		})
		shown++
	}

	if shown == 0 {
		pterm.Info.Println("no published artifacts")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
