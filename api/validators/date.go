package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date is a nullable date body field. It accepts RFC3339 timestamps and plain
// dates; null or "" clears the field. A value that does not parse is reported
// through Check instead of failing the decode.
type Date struct {
	Set     bool
	Value   *time.Time
	invalid bool
}

func (d *Date) UnmarshalJSON(b []byte) error {
	d.Set = true
	d.Value = nil
	d.invalid = false
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		d.invalid = true
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parsed, ok := ParseDate(raw)
	if !ok {
		d.invalid = true
		return nil
	}
	d.Value = &parsed
	return nil
}

// Cleared reports whether the key was sent as null or an empty string.
func (d Date) Cleared() bool {
	return d.Set && d.Value == nil && !d.invalid
}

// Check adds a violation for field when the sent value was not a date.
func (d Date) Check(fields pkgerrors.FieldErrors, field string) {
	if d.invalid {
		fields.Add(field, fmt.Sprintf("The %s field must be a valid date.", humanize(field)))
	}
}

// ParseDate parses value with the accepted layouts. Values without a zone are UTC.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
