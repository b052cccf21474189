// Package config provides configuration management for the greeter CLI.
package config

// Default configuration values.
const (
	DefaultProject = "greeter"
	DefaultName    = "World"
	DefaultHost    = "console"
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort    = 8765
	DefaultWasmDir = "web"
)

// ServeConfig holds configuration for the dev server.
type ServeConfig struct {
	Port          int    `koanf:"port"`
	Watch         bool   `koanf:"watch"`
	WasmDir       string `koanf:"wasm_dir"`
	SessionSecret string `koanf:"session_secret"`
}

// Config holds all CLI configuration options.
type Config struct {
	// Project titles the dev server page. greeter init sets it to the
	// project directory name.
	Project string `koanf:"project"`
	// Name is greeted when greet is run without arguments.
	Name         string      `koanf:"name"`
	Host         string      `koanf:"host"`
	OutputFormat string      `koanf:"output"`
	Verbose      bool        `koanf:"verbose"`
	Serve        ServeConfig `koanf:"serve"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Project:      DefaultProject,
		Name:         DefaultName,
		Host:         DefaultHost,
		OutputFormat: DefaultOutput,
		Serve: ServeConfig{
			Port:    DefaultPort,
			Watch:   true,
			WasmDir: DefaultWasmDir,
		},
	}
}
