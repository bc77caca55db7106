package http

import (
	"net/url"
	"strconv"
	"time"

	"github.com/akashm011/Auth/internal/auth/service"
)

// queryReader collects per-field parse failures so a handler can report all
// of them in one validation error.
type queryReader struct {
	q      url.Values
	fields map[string]string
}

func newQueryReader(q url.Values) *queryReader {
	return &queryReader{q: q, fields: map[string]string{}}
}

func (qr *queryReader) String(key string) string {
	return qr.q.Get(key)
}

func (qr *queryReader) Int(key string) int {
	raw := qr.q.Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		qr.fields[key] = "must be an integer"
		return 0
	}
	return n
}

func (qr *queryReader) Bool(key string) *bool {
	raw := qr.q.Get(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		qr.fields[key] = "must be true or false"
		return nil
	}
	return &b
}

// Time accepts RFC 3339 timestamps or plain dates.
func (qr *queryReader) Time(key string) *time.Time {
	raw := qr.q.Get(key)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	qr.fields[key] = "must be an RFC 3339 timestamp or YYYY-MM-DD date"
	return nil
}

// Err returns the collected failures, or nil.
func (qr *queryReader) Err() error {
	if len(qr.fields) == 0 {
		return nil
	}
	return &service.ValidationError{Fields: qr.fields}
}
