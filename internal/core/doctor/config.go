package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sharo-jef/checklist-sub001/internal/core/config"
)

// ConfigCheck reports on the config file and the paths it references.
type ConfigCheck struct {
	ConfigPath string
	Config     *config.Config
}

func (c *ConfigCheck) Name() string { return "Configuration" }

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.ConfigPath); os.IsNotExist(err) {
		result.Items = append(result.Items, warn("config file", fmt.Sprintf("%s not found, using defaults", c.ConfigPath)))
	} else if err != nil {
		result.Items = append(result.Items, fail("config file", err.Error()))
	} else {
		result.Items = append(result.Items, pass("config file", c.ConfigPath))
	}

	result.Items = append(result.Items, pass("theme", c.Config.Theme))

	if _, err := os.Stat(c.Config.DataDir); err != nil {
		// The data dir is created on demand, so absence is not a failure.
		result.Items = append(result.Items, warn("data dir", fmt.Sprintf("%s does not exist yet", c.Config.DataDir)))
	} else {
		result.Items = append(result.Items, pass("data dir", c.Config.DataDir))
	}

	for _, pattern := range c.Config.Content.Paths {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		switch {
		case err != nil:
			result.Items = append(result.Items, fail("content path", fmt.Sprintf("%s: %v", pattern, err)))
		case len(matches) == 0:
			result.Items = append(result.Items, warn("content path", fmt.Sprintf("%s matches no files", pattern)))
		default:
			result.Items = append(result.Items, pass("content path", fmt.Sprintf("%s (%d files)", pattern, len(matches))))
		}
	}

	return result
}
