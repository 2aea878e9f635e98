package lite

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/tabular"
)

// JSON is the constrained-profile JSON codec. It relies only on
// encoding/json to stay inside the serverless package size ceiling, and it
// honors the same contract as the full profile: object or array-of-objects
// root, top-level keys only, nested values carried verbatim.
type JSON struct{}

func (JSON) Decode(data []byte) (*tabular.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("json", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, obfxerr.NewMalformedInputError("json", errors.New("root must be an object or an array of objects"))
	}

	t := &tabular.Table{}
	switch delim {
	case '{':
		rec, err := decodeJSONObject(data)
		if err != nil {
			return nil, err
		}
		t.Records = []*tabular.Record{rec}
		t.SingleRecord = true
	case '[':
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, obfxerr.NewMalformedInputError("json", err)
			}
			rec, err := decodeJSONObject(raw)
			if err != nil {
				return nil, err
			}
			t.Records = append(t.Records, rec)
		}
		if _, err := dec.Token(); err != nil {
			return nil, obfxerr.NewMalformedInputError("json", err)
		}
		if err := requireEOF(dec); err != nil {
			return nil, err
		}
	default:
		return nil, obfxerr.NewMalformedInputError("json", errors.New("root must be an object or an array of objects"))
	}
	return t, nil
}

// requireEOF fails when anything but whitespace follows the top-level value,
// so a document with trailing content never decodes to a truncated table.
func requireEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return obfxerr.NewMalformedInputError("json", errors.New("unexpected content after top-level value"))
	}
	return nil
}

func decodeJSONObject(raw []byte) (*tabular.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, obfxerr.NewMalformedInputError("json", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, obfxerr.NewMalformedInputError("json", errors.New("array element is not an object"))
	}

	rec := tabular.NewRecord(8)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, obfxerr.NewMalformedInputError("json", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, obfxerr.NewMalformedInputError("json", errors.New("object key is not a string"))
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, obfxerr.NewMalformedInputError("json", err)
		}
		rec.Append(key, tabular.RawJSON(val))
	}
	if _, err := dec.Token(); err != nil {
		return nil, obfxerr.NewMalformedInputError("json", err)
	}
	if err := requireEOF(dec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (JSON) Encode(t *tabular.Table) ([]byte, error) {
	var buf bytes.Buffer
	if t.SingleRecord && len(t.Records) == 1 {
		if err := encodeJSONObject(&buf, t.Records[0]); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	buf.WriteByte('[')
	for i, rec := range t.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSONObject(&buf, rec); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func encodeJSONObject(buf *bytes.Buffer, rec *tabular.Record) error {
	buf.WriteByte('{')
	for i, key := range rec.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return obfxerr.NewMalformedInputError("json", err)
		}
		buf.Write(kb)
		buf.WriteByte(':')

		v, _ := rec.Get(key)
		switch val := v.(type) {
		case tabular.RawJSON:
			buf.Write(val)
		case nil:
			buf.WriteString("null")
		default:
			vb, err := json.Marshal(val)
			if err != nil {
				return obfxerr.NewMalformedInputError("json", err)
			}
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return nil
}
