package timeutils

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"

	"github.com/go-faster/errors"
)

// NoonOffset is a GTFS time of day stored as seconds since noon.
// It marshals to JSON and SQL as its HH:MM:SS form.
type NoonOffset int

// ParseNoonOffset parses an HH:MM:SS string into a NoonOffset.
func ParseNoonOffset(s string) (NoonOffset, bool) {
	n, ok := ParseSecondsSinceNoon(s)
	return NoonOffset(n), ok
}

// Seconds returns the offset as a plain int.
func (o NoonOffset) Seconds() int { return int(o) }

// String renders the offset as HH:MM:SS.
func (o NoonOffset) String() string { return FormatSecondsSinceNoon(int(o)) }

func (o NoonOffset) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *NoonOffset) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "noon offset")
	}
	n, ok := ParseNoonOffset(s)
	if !ok {
		return errors.Errorf("noon offset: malformed time %q", s)
	}
	*o = n
	return nil
}

// Scan accepts HH:MM:SS text or an integer number of seconds since noon.
func (o *NoonOffset) Scan(v any) error {
	switch x := v.(type) {
	case int64:
		*o = NoonOffset(x)
		return nil
	case []byte:
		return o.scanText(string(x))
	case string:
		return o.scanText(x)
	default:
		return errors.Errorf("noon offset: unsupported Scan type %T", v)
	}
}

func (o *NoonOffset) scanText(s string) error {
	if n, ok := ParseNoonOffset(s); ok {
		*o = n
		return nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.Errorf("noon offset: malformed value %q", s)
	}
	*o = NoonOffset(i)
	return nil
}

// Value stores the HH:MM:SS form.
func (o NoonOffset) Value() (driver.Value, error) {
	return o.String(), nil
}
