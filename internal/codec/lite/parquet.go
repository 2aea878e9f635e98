package lite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"

	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

// Parquet is the constrained-profile Parquet codec, backed by the pure-Go
// parquet-go library. Only flat schemas are supported; nested groups fail the
// decode. Column order, row order, and non-masked column types are preserved,
// matching the full profile's output contract.
type Parquet struct{}

func (Parquet) Decode(data []byte) (*tabular.Table, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("parquet", err)
	}

	fields := f.Schema().Fields()
	schema := make(tabular.Schema, len(fields))
	units := make([]*format.TimeUnit, len(fields))
	for i, fld := range fields {
		if !fld.Leaf() {
			return nil, obfxerr.NewMalformedInputError("parquet",
				fmt.Errorf("column %q: nested schemas are not supported", fld.Name()))
		}
		typ, unit, err := parquetToTabular(fld.Type())
		if err != nil {
			return nil, obfxerr.NewMalformedInputError("parquet", fmt.Errorf("column %q: %w", fld.Name(), err))
		}
		schema[i] = tabular.Column{Name: fld.Name(), Type: typ}
		units[i] = unit
	}

	t := &tabular.Table{Schema: schema}
	buf := make([]parquet.Row, 128)
	for _, rg := range f.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rec := tabular.NewRecord(len(schema))
				vals := make([]tabular.Value, len(schema))
				for _, v := range row {
					ci := v.Column()
					if ci < 0 || ci >= len(schema) {
						rows.Close()
						return nil, obfxerr.NewMalformedInputError("parquet",
							fmt.Errorf("value for unknown column index %d", ci))
					}
					tv, convErr := parquetValue(v, schema[ci].Type, units[ci])
					if convErr != nil {
						rows.Close()
						return nil, obfxerr.NewMalformedInputError("parquet",
							fmt.Errorf("column %q: %w", schema[ci].Name, convErr))
					}
					vals[ci] = tv
				}
				for i, col := range schema {
					rec.Append(col.Name, vals[i])
				}
				t.Records = append(t.Records, rec)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				rows.Close()
				return nil, obfxerr.NewMalformedInputError("parquet", err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, obfxerr.NewMalformedInputError("parquet", err)
		}
	}
	return t, nil
}

func (Parquet) Encode(t *tabular.Table) ([]byte, error) {
	structType, err := rowStructOf(t.Schema)
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("parquet", err)
	}
	schema := parquet.SchemaOf(reflect.New(structType).Elem().Interface())

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, schema)
	for _, rec := range t.Records {
		rv := reflect.New(structType).Elem()
		for i, col := range t.Schema {
			v, _ := rec.Get(col.Name)
			if v == nil {
				continue
			}
			if err := setRowField(rv.Field(i), col, v); err != nil {
				return nil, obfxerr.NewMalformedInputError("parquet", fmt.Errorf("column %q: %w", col.Name, err))
			}
		}
		if err := w.Write(rv.Addr().Interface()); err != nil {
			return nil, obfxerr.NewMalformedInputError("parquet", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, obfxerr.NewMalformedInputError("parquet", err)
	}
	return buf.Bytes(), nil
}

// rowStructOf builds a struct type mirroring the schema so parquet-go emits
// columns in schema order with the exact declared types. Every column is
// optional so null cells round-trip: pointer fields where the tag parser
// allows a pointer, zero-as-null fields where it does not.
func rowStructOf(schema tabular.Schema) (reflect.Type, error) {
	fields := make([]reflect.StructField, len(schema))
	for i, col := range schema {
		var goType reflect.Type
		tag := fmt.Sprintf(`parquet:"%s,optional"`, col.Name)
		switch col.Type {
		case tabular.TypeString:
			goType = reflect.PointerTo(reflect.TypeOf(""))
		case tabular.TypeBool:
			goType = reflect.PointerTo(reflect.TypeOf(false))
		case tabular.TypeInt32:
			goType = reflect.PointerTo(reflect.TypeOf(int32(0)))
		case tabular.TypeInt64:
			goType = reflect.PointerTo(reflect.TypeOf(int64(0)))
		case tabular.TypeFloat32:
			goType = reflect.PointerTo(reflect.TypeOf(float32(0)))
		case tabular.TypeFloat64:
			goType = reflect.PointerTo(reflect.TypeOf(float64(0)))
		case tabular.TypeBytes:
			goType = reflect.TypeOf([]byte(nil))
		case tabular.TypeTimestamp:
			// parquet-go accepts the timestamp tag on int64 and time.Time
			// only, never on a pointer, so this column cannot use the
			// pointer-for-optional convention. The zero time stands for
			// null instead: optional non-pointer fields are written as
			// null when the value is the zero value.
			goType = reflect.TypeOf(time.Time{})
			tag = fmt.Sprintf(`parquet:"%s,optional,timestamp(microsecond)"`, col.Name)
		default:
			return nil, fmt.Errorf("column %q: unsupported type %s", col.Name, col.Type)
		}
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("Col%d", i),
			Type: goType,
			Tag:  reflect.StructTag(tag),
		}
	}
	return reflect.StructOf(fields), nil
}

func setRowField(fv reflect.Value, col tabular.Column, v tabular.Value) error {
	switch col.Type {
	case tabular.TypeBytes:
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("expected bytes, got %T", v)
		}
		fv.SetBytes(b)
		return nil
	case tabular.TypeTimestamp:
		ts, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected timestamp, got %T", v)
		}
		fv.Set(reflect.ValueOf(ts))
		return nil
	}

	rv := reflect.ValueOf(v)
	elem := fv.Type().Elem()
	if rv.Type() != elem {
		return fmt.Errorf("expected %s, got %T", elem, v)
	}
	p := reflect.New(elem)
	p.Elem().Set(rv)
	fv.Set(p)
	return nil
}

func parquetToTabular(t parquet.Type) (tabular.Type, *format.TimeUnit, error) {
	if lt := t.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil:
			return tabular.TypeString, nil, nil
		case lt.Timestamp != nil:
			unit := lt.Timestamp.Unit
			return tabular.TypeTimestamp, &unit, nil
		}
	}
	switch t.Kind() {
	case parquet.Boolean:
		return tabular.TypeBool, nil, nil
	case parquet.Int32:
		return tabular.TypeInt32, nil, nil
	case parquet.Int64:
		return tabular.TypeInt64, nil, nil
	case parquet.Float:
		return tabular.TypeFloat32, nil, nil
	case parquet.Double:
		return tabular.TypeFloat64, nil, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return tabular.TypeBytes, nil, nil
	default:
		return 0, nil, fmt.Errorf("unsupported physical type %s", t.Kind())
	}
}

func parquetValue(v parquet.Value, typ tabular.Type, unit *format.TimeUnit) (tabular.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch typ {
	case tabular.TypeString:
		return v.String(), nil
	case tabular.TypeBool:
		return v.Boolean(), nil
	case tabular.TypeInt32:
		return v.Int32(), nil
	case tabular.TypeInt64:
		return v.Int64(), nil
	case tabular.TypeFloat32:
		return v.Float(), nil
	case tabular.TypeFloat64:
		return v.Double(), nil
	case tabular.TypeBytes:
		return bytes.Clone(v.ByteArray()), nil
	case tabular.TypeTimestamp:
		n := v.Int64()
		switch {
		case unit == nil:
			return nil, fmt.Errorf("timestamp column without a time unit")
		case unit.Millis != nil:
			return time.UnixMilli(n).UTC(), nil
		case unit.Micros != nil:
			return time.UnixMicro(n).UTC(), nil
		case unit.Nanos != nil:
			return time.Unix(0, n).UTC(), nil
		default:
			return nil, fmt.Errorf("unrecognized timestamp unit")
		}
	default:
		return nil, fmt.Errorf("unsupported column type %s", typ)
	}
}
