// Package codec turns entity collections into JSON and back, including the
// timestamp forms found in stored data.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Layout is the wire form of a Timestamp.
const Layout = "2006-01-02T15:04:05.000Z"

const dateOnly = "2006-01-02"

// Timestamp is an instant normalised to UTC with millisecond precision, so a
// value survives an encode/decode cycle unchanged. The zero Timestamp encodes
// as null. Instants whose year falls outside 0000-9999 have no Layout form and
// encode as epoch milliseconds instead.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalises t.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// Ptr returns a pointer to NewTimestamp(t), for optional fields.
func Ptr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	if !t.formattable() {
		return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
	}
	return []byte(`"` + t.UTC().Format(Layout) + `"`), nil
}

// UnmarshalJSON accepts null, RFC 3339 strings with or without fractional
// seconds, date-only strings (UTC midnight) and numbers of epoch
// milliseconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseTime(s)
		if err != nil {
			return err
		}
		*t = NewTimestamp(parsed)
		return nil
	}

	ms, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("timestamp: unsupported value %s", b)
	}
	if ms < minMillis || ms > maxMillis {
		return fmt.Errorf("timestamp: %s out of range", b)
	}
	*t = NewTimestamp(time.UnixMilli(int64(ms)))
	return nil
}

// ParseTime parses the string forms accepted by Timestamp. An empty string
// is the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(dateOnly, s); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("timestamp: cannot parse %q", s)
}

// Bounds of epoch milliseconds that fit in an int64 once converted.
const (
	minMillis = -(1 << 62)
	maxMillis = 1 << 62
)

func (t Timestamp) formattable() bool {
	y := t.UTC().Year()
	return y >= 0 && y <= 9999
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(Layout)
}
