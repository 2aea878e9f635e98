package obfx

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/hengadev/obfx/internal/obfxerr"
)

// Config holds deployment-level settings for the engine. It contains only
// data, no behavior: values can come from the environment, a YAML file, or
// code, and are passed explicitly to the entry points.
type Config struct {
	// DefaultFields is the field list applied when a request carries none.
	// Typically set per deployment (e.g. every file landing in one bucket
	// shares the same PII columns).
	DefaultFields []string `yaml:"default_fields"`

	// Region is the object store region. If empty, the provider falls
	// back to its own environment resolution.
	Region string `yaml:"region"`
}

// Validate checks the configuration, collecting every fault before failing.
func (c Config) Validate() error {
	var errs errsx.Map
	for _, f := range c.DefaultFields {
		if strings.TrimSpace(f) == "" {
			errs.Set("default_fields", "field names cannot be blank")
			break
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return fmt.Errorf("%w: %s", obfxerr.ErrInvalidConfiguration, errs.AsError())
}
