package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/obfx"
)

// mockS3Client implements s3Client with configurable behavior per call.
type mockS3Client struct {
	getObjectFunc func(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	putObjectFunc func(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

func (m *mockS3Client) GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	return m.getObjectFunc(ctx, params, optFns...)
}

func (m *mockS3Client) PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	return m.putObjectFunc(ctx, params, optFns...)
}

func testLocator(t *testing.T) obfx.Locator {
	t.Helper()
	loc, err := obfx.ParseLocator("s3://my-bucket/new_data/file1.csv")
	require.NoError(t, err)
	return loc
}

func TestStoreFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotBucket, gotKey string
		store := &Store{client: &mockS3Client{
			getObjectFunc: func(_ context.Context, params *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
				gotBucket = aws.ToString(params.Bucket)
				gotKey = aws.ToString(params.Key)
				return &awss3.GetObjectOutput{
					Body: io.NopCloser(bytes.NewReader([]byte("name,email\nJohn,j@x.com\n"))),
				}, nil
			},
		}}

		data, err := store.Fetch(context.Background(), testLocator(t))
		require.NoError(t, err)
		assert.Equal(t, "name,email\nJohn,j@x.com\n", string(data))
		assert.Equal(t, "my-bucket", gotBucket)
		assert.Equal(t, "new_data/file1.csv", gotKey)
	})

	t.Run("missing key", func(t *testing.T) {
		store := &Store{client: &mockS3Client{
			getObjectFunc: func(_ context.Context, _ *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
				return nil, errors.New("NoSuchKey: the specified key does not exist")
			},
		}}

		_, err := store.Fetch(context.Background(), testLocator(t))
		assert.ErrorIs(t, err, obfx.ErrSourceNotFound)
	})

	t.Run("body read failure", func(t *testing.T) {
		store := &Store{client: &mockS3Client{
			getObjectFunc: func(_ context.Context, _ *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
				return &awss3.GetObjectOutput{Body: io.NopCloser(&failingReader{})}, nil
			},
		}}

		_, err := store.Fetch(context.Background(), testLocator(t))
		assert.ErrorIs(t, err, obfx.ErrSourceNotFound)
	})
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStoreStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got *awss3.PutObjectInput
		store := &Store{client: &mockS3Client{
			putObjectFunc: func(_ context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
				got = params
				return &awss3.PutObjectOutput{}, nil
			},
		}}

		err := store.Store(context.Background(), testLocator(t), []byte("name,email\n****,****\n"), "text/csv")
		require.NoError(t, err)

		assert.Equal(t, "my-bucket", aws.ToString(got.Bucket))
		assert.Equal(t, "new_data/file1.csv", aws.ToString(got.Key))
		assert.Equal(t, "text/csv", aws.ToString(got.ContentType))
		body, err := io.ReadAll(got.Body)
		require.NoError(t, err)
		assert.Equal(t, "name,email\n****,****\n", string(body))
	})

	t.Run("put failure", func(t *testing.T) {
		store := &Store{client: &mockS3Client{
			putObjectFunc: func(_ context.Context, _ *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
				return nil, errors.New("AccessDenied")
			},
		}}

		err := store.Store(context.Background(), testLocator(t), []byte("x"), "text/csv")
		assert.ErrorIs(t, err, obfx.ErrWriteFailure)
	})
}

func TestNewWithProvidedConfig(t *testing.T) {
	cfg := aws.Config{Region: "eu-west-2"}
	store, err := New(context.Background(), Config{AWSConfig: &cfg})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-2", store.region)
	assert.NotNil(t, store.client)
}
