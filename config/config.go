package config

import (
	"fmt"
	"strings"
)

// Conventions describes the project-layout conventions the scanner relies on.
// They are configuration values rather than literals so non-default layouts
// (unusual root markers, a different initializer filename) stay supported.
// Field tags use mapstructure for viper unmarshalling.
type Conventions struct {
	// RootMarkers are filenames whose presence marks a project root.
	RootMarkers []string `mapstructure:"root_markers"`

	// SourceSuffix is the source file extension, including the dot.
	SourceSuffix string `mapstructure:"source_suffix"`

	// InitializerName is the package initializer filename.
	InitializerName string `mapstructure:"initializer_name"`

	// EntrypointPattern is the regular expression that marks a file as
	// directly runnable.
	EntrypointPattern string `mapstructure:"entrypoint_pattern"`
}

// Default returns the conventions of a standard Python project.
func Default() Conventions {
	return Conventions{
		RootMarkers:       []string{"setup.py", "pyproject.toml", ".git"},
		SourceSuffix:      ".py",
		InitializerName:   "__init__.py",
		EntrypointPattern: `if\s+__name__\s*==\s*["']__main__["']\s*:`,
	}
}

// Validate checks that the conventions are internally consistent.
func (c Conventions) Validate() error {
	if len(c.RootMarkers) == 0 {
		return fmt.Errorf("at least one root marker is required")
	}
	if !strings.HasPrefix(c.SourceSuffix, ".") {
		return fmt.Errorf("source suffix must start with a dot, got %q", c.SourceSuffix)
	}
	if !strings.HasSuffix(c.InitializerName, c.SourceSuffix) {
		return fmt.Errorf("initializer name %q must carry the source suffix %q", c.InitializerName, c.SourceSuffix)
	}
	if c.EntrypointPattern == "" {
		return fmt.Errorf("entrypoint pattern is required")
	}
	return nil
}

// Extension returns the source suffix without the leading dot.
func (c Conventions) Extension() string {
	return strings.TrimPrefix(c.SourceSuffix, ".")
}

// InitializerModule returns the initializer filename without the source
// suffix, i.e. the module name a package import expands to.
func (c Conventions) InitializerModule() string {
	return strings.TrimSuffix(c.InitializerName, c.SourceSuffix)
}
