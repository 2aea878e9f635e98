package full

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

// Parquet is the full-profile Parquet codec, backed by Apache Arrow. The
// decoded table carries every column's declared type so the encoder can
// preserve the schema for columns that were not masked.
type Parquet struct{}

func (Parquet) Decode(data []byte) (*tabular.Table, error) {
	rdr, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("parquet", err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("parquet", err)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("parquet", err)
	}
	defer tbl.Release()

	schema := make(tabular.Schema, tbl.NumCols())
	for i, f := range tbl.Schema().Fields() {
		typ, err := arrowToTabular(f.Type)
		if err != nil {
			return nil, obfxerr.NewMalformedInputError("parquet", fmt.Errorf("column %q: %w", f.Name, err))
		}
		schema[i] = tabular.Column{Name: f.Name, Type: typ}
	}

	numRows := int(tbl.NumRows())
	columns := make([][]tabular.Value, tbl.NumCols())
	for ci := 0; ci < int(tbl.NumCols()); ci++ {
		vals := make([]tabular.Value, 0, numRows)
		for _, chunk := range tbl.Column(ci).Data().Chunks() {
			chunkVals, err := arrowChunkValues(chunk)
			if err != nil {
				return nil, obfxerr.NewMalformedInputError("parquet", fmt.Errorf("column %q: %w", schema[ci].Name, err))
			}
			vals = append(vals, chunkVals...)
		}
		columns[ci] = vals
	}

	t := &tabular.Table{
		Schema:  schema,
		Records: make([]*tabular.Record, 0, numRows),
	}
	for r := 0; r < numRows; r++ {
		rec := tabular.NewRecord(len(schema))
		for c, col := range schema {
			rec.Append(col.Name, columns[c][r])
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func (Parquet) Encode(t *tabular.Table) ([]byte, error) {
	mem := memory.DefaultAllocator

	fields := make([]arrow.Field, len(t.Schema))
	builders := make([]array.Builder, len(t.Schema))
	for i, col := range t.Schema {
		dt := tabularToArrow(col.Type)
		fields[i] = arrow.Field{Name: col.Name, Type: dt, Nullable: true}
		builders[i] = array.NewBuilder(mem, dt)
		defer builders[i].Release()
	}

	for _, rec := range t.Records {
		for i, col := range t.Schema {
			v, _ := rec.Get(col.Name)
			if err := appendArrow(builders[i], v); err != nil {
				return nil, obfxerr.NewMalformedInputError("parquet", fmt.Errorf("column %q: %w", col.Name, err))
			}
		}
	}

	cols := make([]arrow.Array, len(builders))
	for i, b := range builders {
		cols[i] = b.NewArray()
		defer cols[i].Release()
	}

	schema := arrow.NewSchema(fields, nil)
	arec := array.NewRecord(schema, cols, int64(len(t.Records)))
	defer arec.Release()
	atbl := array.NewTableFromRecords(schema, []arrow.Record{arec})
	defer atbl.Release()

	chunkSize := int64(len(t.Records))
	if chunkSize == 0 {
		chunkSize = 1
	}
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))

	var buf bytes.Buffer
	if err := pqarrow.WriteTable(atbl, &buf, chunkSize, props, pqarrow.DefaultWriterProps()); err != nil {
		return nil, obfxerr.NewMalformedInputError("parquet", err)
	}
	return buf.Bytes(), nil
}

func arrowToTabular(dt arrow.DataType) (tabular.Type, error) {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return tabular.TypeString, nil
	case arrow.BOOL:
		return tabular.TypeBool, nil
	case arrow.INT32:
		return tabular.TypeInt32, nil
	case arrow.INT64:
		return tabular.TypeInt64, nil
	case arrow.FLOAT32:
		return tabular.TypeFloat32, nil
	case arrow.FLOAT64:
		return tabular.TypeFloat64, nil
	case arrow.BINARY, arrow.LARGE_BINARY:
		return tabular.TypeBytes, nil
	case arrow.TIMESTAMP:
		return tabular.TypeTimestamp, nil
	default:
		return 0, fmt.Errorf("unsupported column type %s", dt.Name())
	}
}

func tabularToArrow(t tabular.Type) arrow.DataType {
	switch t {
	case tabular.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case tabular.TypeInt32:
		return arrow.PrimitiveTypes.Int32
	case tabular.TypeInt64:
		return arrow.PrimitiveTypes.Int64
	case tabular.TypeFloat32:
		return arrow.PrimitiveTypes.Float32
	case tabular.TypeFloat64:
		return arrow.PrimitiveTypes.Float64
	case tabular.TypeBytes:
		return arrow.BinaryTypes.Binary
	case tabular.TypeTimestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	default:
		return arrow.BinaryTypes.String
	}
}

func arrowChunkValues(chunk arrow.Array) ([]tabular.Value, error) {
	vals := make([]tabular.Value, 0, chunk.Len())
	appendNullable := func(i int, v tabular.Value) {
		if chunk.IsNull(i) {
			vals = append(vals, nil)
		} else {
			vals = append(vals, v)
		}
	}

	switch arr := chunk.(type) {
	case *array.String:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, strings.Clone(arr.Value(i)))
		}
	case *array.LargeString:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, strings.Clone(arr.Value(i)))
		}
	case *array.Boolean:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, arr.Value(i))
		}
	case *array.Int32:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, arr.Value(i))
		}
	case *array.Int64:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, arr.Value(i))
		}
	case *array.Float32:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, arr.Value(i))
		}
	case *array.Float64:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, arr.Value(i))
		}
	case *array.Binary:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, bytes.Clone(arr.Value(i)))
		}
	case *array.LargeBinary:
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, bytes.Clone(arr.Value(i)))
		}
	case *array.Timestamp:
		tsType := arr.DataType().(*arrow.TimestampType)
		for i := 0; i < arr.Len(); i++ {
			appendNullable(i, arr.Value(i).ToTime(tsType.Unit).UTC())
		}
	default:
		return nil, fmt.Errorf("unsupported column type %s", chunk.DataType().Name())
	}
	return vals, nil
}

func appendArrow(b array.Builder, v tabular.Value) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch bld := b.(type) {
	case *array.StringBuilder:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		bld.Append(s)
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		bld.Append(x)
	case *array.Int32Builder:
		x, ok := v.(int32)
		if !ok {
			return fmt.Errorf("expected int32, got %T", v)
		}
		bld.Append(x)
	case *array.Int64Builder:
		x, ok := v.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", v)
		}
		bld.Append(x)
	case *array.Float32Builder:
		x, ok := v.(float32)
		if !ok {
			return fmt.Errorf("expected float32, got %T", v)
		}
		bld.Append(x)
	case *array.Float64Builder:
		x, ok := v.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", v)
		}
		bld.Append(x)
	case *array.BinaryBuilder:
		x, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("expected bytes, got %T", v)
		}
		bld.Append(x)
	case *array.TimestampBuilder:
		x, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected timestamp, got %T", v)
		}
		bld.Append(arrow.Timestamp(x.UnixMicro()))
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}
