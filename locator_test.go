package obfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Locator
		wantErr bool
	}{
		{
			name: "local relative path",
			raw:  "data/file.csv",
			want: Locator{Raw: "data/file.csv"},
		},
		{
			name: "local absolute path",
			raw:  "/tmp/out.json",
			want: Locator{Raw: "/tmp/out.json"},
		},
		{
			name: "s3 uri",
			raw:  "s3://my-bucket/some/key.parquet",
			want: Locator{Raw: "s3://my-bucket/some/key.parquet", Scheme: "s3", Bucket: "my-bucket", Key: "some/key.parquet"},
		},
		{
			name: "s3 uri with single segment key",
			raw:  "s3://bucket/file.csv",
			want: Locator{Raw: "s3://bucket/file.csv", Scheme: "s3", Bucket: "bucket", Key: "file.csv"},
		},
		{
			name:    "empty locator",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "uri without key",
			raw:     "s3://bucket-only",
			wantErr: true,
		},
		{
			name:    "uri with empty key",
			raw:     "s3://bucket/",
			wantErr: true,
		},
		{
			name:    "uri without bucket",
			raw:     "s3:///key.csv",
			wantErr: true,
		},
		{
			name:    "uri without scheme",
			raw:     "://bucket/key.csv",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocator(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSourceNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocatorPath(t *testing.T) {
	obj, err := ParseLocator("s3://bucket/dir/data.csv")
	require.NoError(t, err)
	assert.True(t, obj.IsObject())
	assert.Equal(t, "dir/data.csv", obj.Path())

	local, err := ParseLocator("dir/data.csv")
	require.NoError(t, err)
	assert.False(t, local.IsObject())
	assert.Equal(t, "dir/data.csv", local.Path())
}
