// Package codec defines the format detector and the codec contract both
// execution profiles implement. A codec converts between raw file bytes and
// the tabular model as a pure function; all I/O belongs to the orchestrator.
package codec

import (
	"path/filepath"
	"strings"

	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

// Format identifies one of the supported file formats. It is a closed set:
// the detector only ever produces the three constants below.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// ContentType returns the MIME type written back to the object store.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatParquet:
		return "application/parquet"
	default:
		return "application/octet-stream"
	}
}

// Detect maps a locator's trailing extension to a Format, case-insensitively.
// It is side-effect free and never touches the location itself.
func Detect(locator string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(locator), ".")
	switch Format(strings.ToLower(ext)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatParquet:
		return FormatParquet, nil
	default:
		return "", obfxerr.NewUnsupportedFormatError(strings.ToLower(ext))
	}
}

// Codec is the contract every format implementation satisfies. Decode and
// Encode are pure: same bytes in, same table out, no reads or writes.
type Codec interface {
	Decode(data []byte) (*tabular.Table, error)
	Encode(t *tabular.Table) ([]byte, error)
}

// Registry maps each format to the codec of one execution profile.
type Registry map[Format]Codec

// Lookup returns the codec registered for the format.
func (r Registry) Lookup(f Format) (Codec, error) {
	c, ok := r[f]
	if !ok {
		return nil, obfxerr.NewUnsupportedFormatError(string(f))
	}
	return c, nil
}
