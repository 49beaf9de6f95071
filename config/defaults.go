package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default values applied before any config file or environment variable.
const (
	DefaultWorkers                 = 4
	DefaultGeneratorTimeoutSeconds = 30
	DefaultWatchDebounceMillis     = 250

	// DefaultDirPermissions for created config/output directories
	DefaultDirPermissions = 0o755
)

// SetDefaults registers default values on a Viper instance
func SetDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()
	prismDir := filepath.Join(home, ".prism")

	v.SetDefault("database.path", filepath.Join(prismDir, "registry.db"))
	v.SetDefault("sources.components_dir", "components")
	v.SetDefault("sources.tokens_dir", "tokens")
	v.SetDefault("output.dir", "dist")
	v.SetDefault("pipeline.workers", DefaultWorkers)
	v.SetDefault("pipeline.generator_timeout_seconds", DefaultGeneratorTimeoutSeconds)
	v.SetDefault("pipeline.watch_debounce_millis", DefaultWatchDebounceMillis)
	v.SetDefault("log.json", false)
}
