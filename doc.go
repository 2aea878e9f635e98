// Package obfx anonymizes personally-identifiable fields inside tabular
// files (CSV, JSON, Parquet), overwriting each file in place with masked
// values while leaving all other data and structure intact.
//
// Masking is one-way and lossy: the value of every requested field is
// replaced with the fixed token "****". The engine never infers PII fields,
// never encrypts or tokenizes, and holds no state beyond a single request.
//
// # Quick Start
//
//	store := localfs.New()
//	engine, err := obfx.New(
//	    obfx.WithCodecs(full.Registry()),
//	    obfx.WithLocalStore(store),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := engine.Process(ctx, obfx.Request{
//	    Location: "customers.csv",
//	    Fields:   []string{"name", "email_address"},
//	})
//
// # Execution profiles
//
// Two codec registries implement the same contract:
//
//   - full (internal/codec/full): unrestricted dependency set, used by the
//     CLI and batch workers. Parquet via Apache Arrow, JSON via goccy.
//   - lite (internal/codec/lite): minimal dependency closure for the
//     size-limited serverless runtime. Parquet via parquet-go, JSON via
//     the standard library.
//
// Both profiles share the format detector and the masking policy and must
// produce canonically equivalent output for any input and field list.
//
// # Storage
//
// Sources are addressed by a Locator: a local path handled by
// providers/localfs, or an s3://bucket/key URI handled by providers/s3. The
// source location is read once and overwritten once; a failure before the
// final write leaves it untouched.
package obfx
