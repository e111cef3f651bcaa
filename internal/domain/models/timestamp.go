// internal/domain/models/timestamp.go
package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// isoLayout matches the millisecond UTC form used in report text.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is an instant reported by the statistics service.
// The service sends either epoch milliseconds or an RFC 3339 string.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts epoch milliseconds, RFC 3339 strings, or null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			// Some producers send numeric strings.
			if ms, nerr := strconv.ParseFloat(s, 64); nerr == nil {
				t.Time = fromMillis(ms)
				return nil
			}
			return fmt.Errorf("timestamp: %w", err)
		}
		t.Time = parsed.UTC()
		return nil
	}

	ms, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t.Time = fromMillis(ms)
	return nil
}

// MarshalJSON writes the instant as an ISO 8601 UTC string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.ISO())), nil
}

// ISO formats the instant as UTC with millisecond precision, e.g. 2020-05-01T08:00:00.000Z.
func (t Timestamp) ISO() string {
	return t.UTC().Format(isoLayout)
}

// TimestampFromMillis builds a Timestamp from epoch milliseconds.
func TimestampFromMillis(ms int64) Timestamp {
	return Timestamp{Time: fromMillis(float64(ms))}
}

func fromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
