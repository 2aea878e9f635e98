package obfx

import "github.com/hengadev/obfx/internal/codec"

// Format identifies one of the supported tabular file formats.
type Format = codec.Format

const (
	FormatCSV     = codec.FormatCSV
	FormatJSON    = codec.FormatJSON
	FormatParquet = codec.FormatParquet
)

// DetectFormat maps a locator's trailing extension to a Format,
// case-insensitively. Any other or missing extension fails with
// ErrUnsupportedFormat. The function never touches the location itself.
func DetectFormat(locator string) (Format, error) {
	return codec.Detect(locator)
}
