package obfx

import (
	"fmt"
	"log/slog"

	"github.com/hengadev/obfx/internal/codec"
	"github.com/hengadev/obfx/internal/obfxerr"
)

// Option configures an Obfuscator at construction time.
type Option func(*Obfuscator) error

// WithCodecs selects the execution profile's codec registry. Entry points
// pass full.Registry() or lite.Registry(); importing only one keeps the
// other profile's serialization libraries out of the binary.
func WithCodecs(r codec.Registry) Option {
	return func(o *Obfuscator) error {
		if len(r) == 0 {
			return fmt.Errorf("%w: codec registry cannot be empty", obfxerr.ErrInvalidConfiguration)
		}
		o.codecs = r
		return nil
	}
}

// WithLocalStore sets the store used for local-path locators.
func WithLocalStore(s BlobStore) Option {
	return func(o *Obfuscator) error {
		if s == nil {
			return fmt.Errorf("%w: local store cannot be nil", obfxerr.ErrInvalidConfiguration)
		}
		o.local = s
		return nil
	}
}

// WithObjectStore sets the store used for object-URI locators.
func WithObjectStore(s BlobStore) Option {
	return func(o *Obfuscator) error {
		if s == nil {
			return fmt.Errorf("%w: object store cannot be nil", obfxerr.ErrInvalidConfiguration)
		}
		o.object = s
		return nil
	}
}

// WithDefaultFields sets the deployment-level field list applied when a
// request carries none.
func WithDefaultFields(fields []string) Option {
	return func(o *Obfuscator) error {
		o.defaultFields = fields
		return nil
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Obfuscator) error {
		if logger == nil {
			return fmt.Errorf("%w: logger cannot be nil", obfxerr.ErrInvalidConfiguration)
		}
		o.logger = logger
		return nil
	}
}

// WithHook sets the observability hook invoked around each request.
func WithHook(h Hook) Option {
	return func(o *Obfuscator) error {
		if h == nil {
			return fmt.Errorf("%w: hook cannot be nil", obfxerr.ErrInvalidConfiguration)
		}
		o.hook = h
		return nil
	}
}
