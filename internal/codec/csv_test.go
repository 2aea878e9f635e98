package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

const sampleCSV = "name,email,phone\nJohn Doe,john@x.com,123-456-7890\nJane Smith,jane@x.com,987-654-3210\n"

func TestCSVDecode(t *testing.T) {
	tbl, err := CSV{}.Decode([]byte(sampleCSV))
	require.NoError(t, err)

	require.Len(t, tbl.Schema, 3)
	assert.Equal(t, "name", tbl.Schema[0].Name)
	assert.Equal(t, "email", tbl.Schema[1].Name)
	assert.Equal(t, "phone", tbl.Schema[2].Name)
	for _, col := range tbl.Schema {
		assert.Equal(t, tabular.TypeString, col.Type)
	}

	require.Len(t, tbl.Records, 2)
	v, ok := tbl.Records[0].Get("email")
	require.True(t, ok)
	assert.Equal(t, "john@x.com", v)
	v, _ = tbl.Records[1].Get("name")
	assert.Equal(t, "Jane Smith", v)
}

func TestCSVRoundTripWithMasking(t *testing.T) {
	tbl, err := CSV{}.Decode([]byte(sampleCSV))
	require.NoError(t, err)

	tabular.Mask(tbl, []string{"name", "email"})

	out, err := CSV{}.Encode(tbl)
	require.NoError(t, err)
	assert.Equal(t,
		"name,email,phone\n****,****,123-456-7890\n****,****,987-654-3210\n",
		string(out))
}

func TestCSVRoundTripUnmaskedIsIdentity(t *testing.T) {
	tbl, err := CSV{}.Decode([]byte(sampleCSV))
	require.NoError(t, err)
	out, err := CSV{}.Encode(tbl)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(out))
}

func TestCSVQuoting(t *testing.T) {
	input := "name,notes\n\"Doe, John\",\"said \"\"hi\"\"\"\n"
	tbl, err := CSV{}.Decode([]byte(input))
	require.NoError(t, err)

	v, _ := tbl.Records[0].Get("name")
	assert.Equal(t, "Doe, John", v)
	v, _ = tbl.Records[0].Get("notes")
	assert.Equal(t, `said "hi"`, v)

	out, err := CSV{}.Encode(tbl)
	require.NoError(t, err)

	again, err := CSV{}.Decode(out)
	require.NoError(t, err)
	v, _ = again.Records[0].Get("name")
	assert.Equal(t, "Doe, John", v)
	v, _ = again.Records[0].Get("notes")
	assert.Equal(t, `said "hi"`, v)
}

func TestCSVDecodeInconsistentColumnCount(t *testing.T) {
	_, err := CSV{}.Decode([]byte("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, obfxerr.ErrMalformedInput)
}

func TestCSVDecodeEmpty(t *testing.T) {
	_, err := CSV{}.Decode(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, obfxerr.ErrMalformedInput)
}

func TestCSVHeaderOnlyRoundTrip(t *testing.T) {
	tbl, err := CSV{}.Decode([]byte("name,email\n"))
	require.NoError(t, err)
	assert.Empty(t, tbl.Records)

	out, err := CSV{}.Encode(tbl)
	require.NoError(t, err)
	assert.Equal(t, "name,email\n", string(out))
}
