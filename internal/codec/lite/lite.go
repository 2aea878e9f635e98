// Package lite is the constrained execution profile: codecs with a minimal
// dependency closure so the serverless bundle stays under its size ceiling.
// Binaries that import only this profile never link Arrow or goccy/go-json.
//
// Lite and full must produce canonically equivalent output for any input and
// field list; the parity tests in the parent package enforce that.
package lite

import "github.com/hengadev/obfx/internal/codec"

// Registry returns the lite-profile codec set.
func Registry() codec.Registry {
	return codec.Registry{
		codec.FormatCSV:     codec.CSV{},
		codec.FormatJSON:    JSON{},
		codec.FormatParquet: Parquet{},
	}
}
