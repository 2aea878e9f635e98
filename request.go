package obfx

import (
	"encoding/json"
	"fmt"

	"github.com/hengadev/errsx"

	"github.com/hengadev/obfx/internal/obfxerr"
)

// Request describes one obfuscation: the location to read and overwrite, and
// the names of the fields to mask. Requests are created fresh per invocation
// and never persisted.
type Request struct {
	// Location is the source locator: a local path or an object URI.
	Location string `json:"file_to_obfuscate"`

	// Fields are the PII field names to mask. Duplicates are harmless and
	// order is irrelevant.
	Fields []string `json:"pii_fields"`
}

func (r Request) validate() error {
	var errs errsx.Map
	if r.Location == "" {
		errs.Set("file_to_obfuscate", "missing required parameter")
	}
	if len(r.Fields) == 0 {
		errs.Set("pii_fields", "missing required parameter")
	}
	if errs.IsEmpty() {
		return nil
	}
	return fmt.Errorf("%w: %s", obfxerr.ErrInvalidFieldSpec, errs.AsError())
}

// Result reports one successful obfuscation. It is transient: returned to
// the caller and never stored.
type Result struct {
	// RequestID correlates the result with the engine's log lines.
	RequestID string `json:"request_id"`

	// Message is the human-readable success summary.
	Message string `json:"message"`

	// Format is the detected source format.
	Format Format `json:"format"`
}

// ParseFieldSpec decodes a PII field list given as a JSON array of strings,
// the shape both entry points accept. Anything else fails with
// ErrInvalidFieldSpec.
func ParseFieldSpec(raw string) ([]string, error) {
	var fields []string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		// A literal null unmarshals into a nil slice without error; it is
		// not an array of field names.
		return nil, obfxerr.NewInvalidFieldSpecError("expected a JSON array of field names")
	}
	return fields, nil
}
