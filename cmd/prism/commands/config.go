package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prismui/prism/config"
)

// ConfigCmd shows the effective configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the configuration after merging defaults, system and user
files, the project prism.toml, and PRISM_ environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Load(); err != nil {
			return err
		}
		out, err := json.MarshalIndent(config.GetViper().AllSettings(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
