package config

// Config is the on-disk configuration.
type Config struct {
	// Space: inputs of the two size queries
	Space SpaceConfig `yaml:"space"`

	// Trace: how the session trace is read
	Trace TraceConfig `yaml:"trace"`

	// Web: settings for --web mode
	Web WebConfig `yaml:"web"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

type SpaceConfig struct {
	Threshold    int64 `yaml:"threshold"`     // e.g. 100000
	Capacity     int64 `yaml:"capacity"`      // e.g. 70000000
	RequiredFree int64 `yaml:"required_free"` // e.g. 30000000
}

type TraceConfig struct {
	// Prompt is "bash", "zsh", "root" or empty to detect it from the trace.
	Prompt string `yaml:"prompt,omitempty"`
	// ListedDirs registers `dir <name>` entries even if they are never entered.
	ListedDirs bool `yaml:"listed_dirs"`
}

type WebConfig struct {
	Addr string `yaml:"addr"` // e.g. ":8080"
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Space: SpaceConfig{
			Threshold:    100000,
			Capacity:     70000000,
			RequiredFree: 30000000,
		},
		Trace: TraceConfig{
			ListedDirs: true,
		},
		Web: WebConfig{
			Addr: ":8080",
		},
		LogLevel: "info",
	}
}
