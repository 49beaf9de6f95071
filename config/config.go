package config

// Config represents the core Prism configuration
type Config struct {
	Database Database `mapstructure:"database"`
	Sources  Sources  `mapstructure:"sources"`
	Output   Output   `mapstructure:"output"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Log      Log      `mapstructure:"log"`
}

// Database configures the SQLite artifact registry
type Database struct {
	Path string `mapstructure:"path"`
}

// Sources configures where component specifications and token documents live
type Sources struct {
	ComponentsDir string `mapstructure:"components_dir"` // directory of *.yaml CSM documents
	TokensDir     string `mapstructure:"tokens_dir"`     // directory of *.toml token documents
}

// Output configures where generated artifacts are written
type Output struct {
	Dir string `mapstructure:"dir"`
}

// Pipeline configures the generation worker pool
type Pipeline struct {
	Workers                 int `mapstructure:"workers"`                   // concurrent generation workers (default: 4)
	GeneratorTimeoutSeconds int `mapstructure:"generator_timeout_seconds"` // per-generator invocation budget (default: 30)
	WatchDebounceMillis     int `mapstructure:"watch_debounce_millis"`     // coalescing window for watch mode (default: 250)
}

// Log configures logging output
type Log struct {
	JSON bool `mapstructure:"json"` // structured JSON output instead of console
}
