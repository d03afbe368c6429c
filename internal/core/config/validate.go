package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
)

// Validate checks that the configuration is structurally sound.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		errs = errs.Append("theme", fmt.Errorf("unknown theme %q, available: %s",
			c.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	if c.Database.BusyTimeoutMS < 0 {
		errs = errs.Append("database.busy_timeout_ms", fmt.Errorf("must not be negative"))
	}

	for i, path := range c.Content.Paths {
		if strings.TrimSpace(path) == "" {
			errs = errs.Append(fmt.Sprintf("content.paths[%d]", i), fmt.Errorf("path is empty"))
		}
	}

	return errs.ToError()
}
