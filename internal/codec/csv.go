package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

// CSV decodes and encodes delimited text. The first line is the header and
// fixes both field names and column order; every value is kept as a string
// with no type inference. Both execution profiles share this codec: the
// delimited-text model has exactly one canonical backend, encoding/csv, so
// there is no serialization library to swap per profile.
type CSV struct{}

func (CSV) Decode(data []byte) (*tabular.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	// FieldsPerRecord defaults to the header width, so a row with an
	// inconsistent column count fails the decode.
	rows, err := r.ReadAll()
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("csv", err)
	}
	if len(rows) == 0 {
		return nil, obfxerr.NewMalformedInputError("csv", errors.New("file is empty or has no header"))
	}

	header := rows[0]
	schema := make(tabular.Schema, len(header))
	for i, name := range header {
		schema[i] = tabular.Column{Name: name, Type: tabular.TypeString}
	}

	t := &tabular.Table{
		Schema:  schema,
		Records: make([]*tabular.Record, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		rec := tabular.NewRecord(len(header))
		for i, name := range header {
			rec.Append(name, row[i])
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func (CSV) Encode(t *tabular.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(t.Schema))
	for i, col := range t.Schema {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return nil, obfxerr.NewMalformedInputError("csv", err)
	}

	row := make([]string, len(header))
	for _, rec := range t.Records {
		for i, name := range header {
			v, _ := rec.Get(name)
			s, err := csvCell(v)
			if err != nil {
				return nil, obfxerr.NewMalformedInputError("csv", fmt.Errorf("column %q: %w", name, err))
			}
			row[i] = s
		}
		if err := w.Write(row); err != nil {
			return nil, obfxerr.NewMalformedInputError("csv", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, obfxerr.NewMalformedInputError("csv", err)
	}
	return buf.Bytes(), nil
}

func csvCell(v tabular.Value) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected value type %T", v)
	}
}
