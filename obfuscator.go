package obfx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hengadev/obfx/internal/codec"
	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

// Obfuscator drives one obfuscation request through a linear pipeline:
// resolve the locator, read the bytes, decode them into the tabular model,
// mask the requested fields, encode back into the original format, and
// overwrite the source. The source is only written in the final step, so a
// failure anywhere earlier leaves it byte-identical to before the call.
//
// An Obfuscator holds no per-request state and is safe for concurrent use;
// each request owns its decoded table exclusively for its lifetime.
type Obfuscator struct {
	codecs        codec.Registry
	local         BlobStore
	object        BlobStore
	defaultFields []string
	logger        *slog.Logger
	hook          Hook
}

// New constructs an Obfuscator. A codec registry is required; stores are
// optional, but a request targeting a location with no configured store
// fails with ErrInvalidConfiguration.
func New(opts ...Option) (*Obfuscator, error) {
	o := &Obfuscator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		hook:   NoOpHook{},
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.codecs == nil {
		return nil, fmt.Errorf("%w: a codec registry is required (use WithCodecs)", obfxerr.ErrInvalidConfiguration)
	}
	return o, nil
}

// Process runs one request to completion and returns its result, or the
// typed error that terminated the pipeline. The request's field list falls
// back to the deployment default when empty.
func (o *Obfuscator) Process(ctx context.Context, req Request) (*Result, error) {
	if len(req.Fields) == 0 {
		req.Fields = o.defaultFields
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	logger := o.logger.With("request_id", requestID, "location", req.Location)

	o.hook.OnRequestStart(ctx, requestID, req)
	start := time.Now()
	res, err := o.process(ctx, logger, req)
	o.hook.OnRequestComplete(ctx, requestID, req, time.Since(start), err)

	if err != nil {
		logger.Error("obfuscation failed", "error", err)
		return nil, err
	}
	res.RequestID = requestID
	logger.Info("obfuscation complete", "format", res.Format, "duration", time.Since(start))
	return res, nil
}

func (o *Obfuscator) process(ctx context.Context, logger *slog.Logger, req Request) (*Result, error) {
	// RESOLVE
	loc, err := ParseLocator(req.Location)
	if err != nil {
		return nil, err
	}
	format, err := codec.Detect(loc.Path())
	if err != nil {
		return nil, err
	}
	c, err := o.codecs.Lookup(format)
	if err != nil {
		return nil, err
	}
	store, err := o.storeFor(loc)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved source", "format", format, "object", loc.IsObject())

	// READ
	data, err := store.Fetch(ctx, loc)
	if err != nil {
		return nil, err
	}

	// DECODE
	table, err := c.Decode(data)
	if err != nil {
		return nil, err
	}

	// MASK
	tabular.Mask(table, req.Fields)

	// ENCODE
	out, err := c.Encode(table)
	if err != nil {
		return nil, err
	}

	// WRITE: the one and only mutation of the source location.
	if err := store.Store(ctx, loc, out, format.ContentType()); err != nil {
		return nil, err
	}

	// RESPOND
	return &Result{
		Message: successMessage(loc),
		Format:  format,
	}, nil
}

func (o *Obfuscator) storeFor(loc Locator) (BlobStore, error) {
	if loc.IsObject() {
		if o.object == nil {
			return nil, fmt.Errorf("%w: no object store configured for %s locations", obfxerr.ErrInvalidConfiguration, loc.Scheme)
		}
		return o.object, nil
	}
	if o.local == nil {
		return nil, fmt.Errorf("%w: no local store configured", obfxerr.ErrInvalidConfiguration)
	}
	return o.local, nil
}

func successMessage(loc Locator) string {
	if loc.IsObject() {
		return fmt.Sprintf("Successfully processed and overwritten %s", loc.Raw)
	}
	return fmt.Sprintf("Successfully processed and overwritten local file: %s", loc.Raw)
}
