package lite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

func TestJSONMaskingRoundTrip(t *testing.T) {
	input := `[{"name":"John Doe","email":"john@x.com","phone":"123-456-7890"},{"name":"Jane","email":"jane@x.com","phone":"987"}]`
	tbl, err := JSON{}.Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, tbl.Records, 2)

	tabular.Mask(tbl, []string{"name", "email"})

	out, err := JSON{}.Encode(tbl)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"name":"****","email":"****","phone":"123-456-7890"},{"name":"****","email":"****","phone":"987"}]`,
		string(out))
}

func TestJSONNestedPassThrough(t *testing.T) {
	input := `{"name":"John","address":{"name":"home"}}`
	tbl, err := JSON{}.Decode([]byte(input))
	require.NoError(t, err)
	require.True(t, tbl.SingleRecord)

	tabular.Mask(tbl, []string{"name"})

	out, err := JSON{}.Encode(tbl)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"****","address":{"name":"home"}}`, string(out))
}

func TestJSONDecodeMalformed(t *testing.T) {
	for _, input := range []string{`42`, `[1,2]`, `{"a":`, ``, `[{"a":1}] trailing garbage`, `{"a":1} {"b":2}`} {
		_, err := JSON{}.Decode([]byte(input))
		assert.ErrorIs(t, err, obfxerr.ErrMalformedInput, "input %q", input)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	hired := time.Date(2022, 3, 15, 9, 0, 0, 0, time.UTC)
	src := &tabular.Table{
		Schema: tabular.Schema{
			{Name: "id", Type: tabular.TypeInt64},
			{Name: "name", Type: tabular.TypeString},
			{Name: "score", Type: tabular.TypeFloat64},
			{Name: "active", Type: tabular.TypeBool},
			{Name: "hired_at", Type: tabular.TypeTimestamp},
		},
	}
	rec := tabular.NewRecord(5)
	rec.Append("id", int64(7))
	rec.Append("name", "John Doe")
	rec.Append("score", 99.5)
	rec.Append("active", true)
	rec.Append("hired_at", hired)
	src.Records = append(src.Records, rec)

	data, err := Parquet{}.Encode(src)
	require.NoError(t, err)

	got, err := Parquet{}.Decode(data)
	require.NoError(t, err)

	require.Equal(t, src.Schema, got.Schema)
	require.Len(t, got.Records, 1)
	for _, key := range rec.Keys() {
		wv, _ := rec.Get(key)
		gv, _ := got.Records[0].Get(key)
		assert.True(t, tabular.ValueEqual(wv, gv), "column %q: want %v, got %v", key, wv, gv)
	}
}

func TestParquetMaskedColumnBecomesString(t *testing.T) {
	src := &tabular.Table{
		Schema: tabular.Schema{
			{Name: "id", Type: tabular.TypeInt64},
			{Name: "name", Type: tabular.TypeString},
		},
	}
	rec := tabular.NewRecord(2)
	rec.Append("id", int64(1))
	rec.Append("name", "Jane")
	src.Records = append(src.Records, rec)

	tabular.Mask(src, []string{"id"})

	data, err := Parquet{}.Encode(src)
	require.NoError(t, err)
	got, err := Parquet{}.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, tabular.TypeString, got.Schema[0].Type)
	assert.Equal(t, tabular.TypeString, got.Schema[1].Type)
	id, _ := got.Records[0].Get("id")
	assert.Equal(t, tabular.MaskToken, id)
	name, _ := got.Records[0].Get("name")
	assert.Equal(t, "Jane", name)
}

func TestParquetNullRoundTrip(t *testing.T) {
	hired := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	src := &tabular.Table{
		Schema: tabular.Schema{
			{Name: "name", Type: tabular.TypeString},
			{Name: "age", Type: tabular.TypeInt32},
			{Name: "hired_at", Type: tabular.TypeTimestamp},
		},
	}
	first := tabular.NewRecord(3)
	first.Append("name", "John")
	first.Append("age", nil)
	first.Append("hired_at", hired)
	second := tabular.NewRecord(3)
	second.Append("name", "Jane")
	second.Append("age", int32(31))
	second.Append("hired_at", nil)
	src.Records = append(src.Records, first, second)

	data, err := Parquet{}.Encode(src)
	require.NoError(t, err)
	got, err := Parquet{}.Decode(data)
	require.NoError(t, err)

	require.Len(t, got.Records, 2)
	age, ok := got.Records[0].Get("age")
	require.True(t, ok)
	assert.Nil(t, age)
	ts, _ := got.Records[0].Get("hired_at")
	assert.True(t, tabular.ValueEqual(hired, ts), "got %v", ts)
	ts, ok = got.Records[1].Get("hired_at")
	require.True(t, ok)
	assert.Nil(t, ts)
}

func TestParquetDecodeCorrupt(t *testing.T) {
	_, err := Parquet{}.Decode([]byte{0x00, 0x01, 0x02})
	require.Error(t, err)
	assert.ErrorIs(t, err, obfxerr.ErrMalformedInput)
}
