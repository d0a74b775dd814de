// Package config provides configuration management for the sqlfixture CLI.
package config

// TargetConfig describes the database a suite runs against.
type TargetConfig struct {
	Type     string            `koanf:"type"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Options  map[string]string `koanf:"options"`

	// supplied marks connection keys that were set by any source, even
	// to an empty value. Nil when the target was not built by LoadConfig.
	supplied map[string]bool
}

// Config holds all CLI configuration options.
type Config struct {
	Suite         string        `koanf:"suite"`
	FixturePrefix string        `koanf:"fixture_prefix"`
	EchoSQL       bool          `koanf:"echo_sql"`
	Verbose       bool          `koanf:"verbose"`
	OutputFormat  string        `koanf:"output"`
	Target        *TargetConfig `koanf:"target"`
}

// Default configuration values.
const (
	DefaultTarget = "postgres"
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Default returns the configuration used when nothing was loaded.
func Default() *Config {
	return &Config{
		EchoSQL:      true,
		OutputFormat: DefaultOutput,
		Target:       &TargetConfig{Type: DefaultTarget},
	}
}
