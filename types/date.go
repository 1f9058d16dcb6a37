package types

import (
	"fmt"
	"strings"
	"time"

	"keyless-stay/constants"
)

// Date accepts either a calendar day (2006-01-02) or an RFC3339 timestamp.
// Calendar days resolve to midnight UTC.
type Date struct {
	time.Time
}

// ParseDate parses a calendar day or RFC3339 timestamp into UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(constants.DateLayout, raw, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", raw)
	}
	return t.UTC(), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.UTC().Format(time.RFC3339) + `"`), nil
}
