package config

import (
	"fmt"

	"github.com/leapstack-labs/greeter/internal/cli/output"
	"github.com/leapstack-labs/greeter/internal/host"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !output.Mode(c.OutputFormat).Valid() {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.OutputFormat, output.Modes)
	}

	info, err := host.Lookup(host.Kind(c.Host))
	if err != nil {
		return fmt.Errorf("invalid host: %w", err)
	}
	if !info.Terminal {
		return fmt.Errorf("invalid host %q: only %v can be used from the CLI", c.Host, host.TerminalKinds())
	}

	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range 0-65535", c.Serve.Port)
	}
	return nil
}
