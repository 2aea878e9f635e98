// Package full is the unrestricted execution profile: codecs for local and
// batch workers that may link any dependency, including Apache Arrow for
// Parquet and goccy/go-json for JSON.
package full

import "github.com/hengadev/obfx/internal/codec"

// Registry returns the full-profile codec set.
func Registry() codec.Registry {
	return codec.Registry{
		codec.FormatCSV:     codec.CSV{},
		codec.FormatJSON:    JSON{},
		codec.FormatParquet: Parquet{},
	}
}
