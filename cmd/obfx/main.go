// Command obfx masks PII fields in a tabular file in place.
//
// Usage:
//
//	obfx <input_file> '<pii_fields_json_array>'
//	obfx data.csv '["name", "email"]'
//	obfx s3://my-bucket/data.parquet '["name", "email"]'
//
// The input may be a local path or an s3:// URI; it is overwritten with the
// masked content. On success the command prints a JSON result; on failure it
// prints a single error message and exits non-zero.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/hengadev/obfx"
	"github.com/hengadev/obfx/internal/codec/full"
	"github.com/hengadev/obfx/providers/localfs"
	s3store "github.com/hengadev/obfx/providers/s3"
)

type response struct {
	StatusCode int          `json:"statusCode"`
	Body       responseBody `json:"body"`
}

type responseBody struct {
	Message string      `json:"message"`
	Format  obfx.Format `json:"format"`
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: obfx <input_file> <pii_fields>")
		fmt.Fprintln(os.Stderr, `Example: obfx data.csv '["name", "email"]'`)
		fmt.Fprintln(os.Stderr, `Example: obfx data.json '["name", "email"]'`)
		fmt.Fprintln(os.Stderr, `Example: obfx s3://bucket/data.parquet '["name", "email"]'`)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err, os.Args[1]))
		os.Exit(1)
	}
}

func run(input, fieldSpec string) error {
	// A .env file is optional; ignore its absence.
	_ = godotenv.Load()
	ctx := context.Background()

	fields, err := obfx.ParseFieldSpec(fieldSpec)
	if err != nil {
		return err
	}

	cfg, err := obfx.LoadConfigFromEnvironment()
	if err != nil {
		return err
	}

	loc, err := obfx.ParseLocator(input)
	if err != nil {
		return err
	}

	opts := []obfx.Option{
		obfx.WithCodecs(full.Registry()),
		obfx.WithLocalStore(localfs.New()),
		obfx.WithDefaultFields(cfg.DefaultFields),
	}
	if verbose() {
		opts = append(opts, obfx.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	// The object store needs AWS credentials, so only set it up when the
	// input actually lives in a bucket.
	if loc.IsObject() {
		store, err := s3store.New(ctx, s3store.Config{Region: cfg.Region})
		if err != nil {
			return err
		}
		opts = append(opts, obfx.WithObjectStore(store))
	}

	engine, err := obfx.New(opts...)
	if err != nil {
		return err
	}

	res, err := engine.Process(ctx, obfx.Request{Location: input, Fields: fields})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(response{
		StatusCode: 200,
		Body:       responseBody{Message: res.Message, Format: res.Format},
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func errorMessage(err error, input string) string {
	switch {
	case errors.Is(err, obfx.ErrSourceNotFound):
		return fmt.Sprintf("Input file not found: %s", input)
	case errors.Is(err, obfx.ErrInvalidFieldSpec):
		return "Invalid JSON format for PII fields. Please provide a valid JSON array of field names."
	default:
		return fmt.Sprintf("Error processing file: %v", err)
	}
}

func verbose() bool {
	return os.Getenv("OBFX_VERBOSE") != ""
}
