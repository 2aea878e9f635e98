// Command obfx-lambda is the serverless entry point of the obfuscation
// engine. It runs the lite execution profile so the deployment package stays
// inside the runtime's size ceiling, and it accepts two payload shapes:
//
//	{"file_to_obfuscate": "s3://bucket/key", "pii_fields": ["name", "email"]}
//
// or an S3 event notification, in which case the bucket and key come from
// the first record and the field list from the OBFX_PII_FIELDS environment
// variable.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/hengadev/obfx"
	"github.com/hengadev/obfx/internal/codec/lite"
	s3store "github.com/hengadev/obfx/providers/s3"
)

type response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := obfx.LoadConfigFromEnvironment()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	store, err := s3store.New(ctx, s3store.Config{Region: cfg.Region})
	if err != nil {
		logger.Error("failed to initialize S3 store", "error", err)
		os.Exit(1)
	}
	engine, err := obfx.New(
		obfx.WithCodecs(lite.Registry()),
		obfx.WithObjectStore(store),
		obfx.WithDefaultFields(cfg.DefaultFields),
		obfx.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to initialize engine", "error", err)
		os.Exit(1)
	}

	lambda.Start(func(ctx context.Context, raw json.RawMessage) (response, error) {
		return handle(ctx, engine, raw), nil
	})
}

func handle(ctx context.Context, engine *obfx.Obfuscator, raw json.RawMessage) response {
	req, errResp := parseEvent(raw)
	if errResp != nil {
		return *errResp
	}

	res, err := engine.Process(ctx, req)
	if err != nil {
		return errorResponse(obfx.HTTPStatus(err), err.Error())
	}
	return successResponse(res)
}

// parseEvent extracts a Request from either payload shape.
func parseEvent(raw json.RawMessage) (obfx.Request, *response) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		r := errorResponse(http.StatusBadRequest, "Invalid input")
		return obfx.Request{}, &r
	}

	if _, ok := probe["Records"]; ok {
		var event events.S3Event
		if err := json.Unmarshal(raw, &event); err != nil || len(event.Records) == 0 {
			r := errorResponse(http.StatusBadRequest, "No records found in S3 event")
			return obfx.Request{}, &r
		}
		s3rec := event.Records[0].S3
		req := obfx.Request{
			Location: fmt.Sprintf("s3://%s/%s", s3rec.Bucket.Name, s3rec.Object.Key),
		}
		// An event may carry an explicit field list next to its Records;
		// otherwise the engine's deployment default applies.
		if fieldsRaw, ok := probe["pii_fields"]; ok {
			if err := json.Unmarshal(fieldsRaw, &req.Fields); err != nil {
				r := errorResponse(http.StatusBadRequest, "Invalid input")
				return obfx.Request{}, &r
			}
		}
		return req, nil
	}

	var req obfx.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		r := errorResponse(http.StatusBadRequest, "Invalid input")
		return obfx.Request{}, &r
	}
	return req, nil
}

func successResponse(res *obfx.Result) response {
	body, _ := json.Marshal(map[string]any{
		"message": res.Message,
		"format":  res.Format,
	})
	return response{StatusCode: http.StatusOK, Body: string(body)}
}

func errorResponse(status int, msg string) response {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return response{StatusCode: status, Body: string(body)}
}
