package event

import (
	"fmt"
	"strings"
	"time"
)

// Time decodes the ISO-8601 timestamp strings the upstream service emits.
// Payload timestamps appear at the payload top level, inside stats objects
// and inside list items; every call site goes through this one type so the
// parse behavior cannot drift. Absent, null and empty values decode to the
// zero Time.
type Time struct {
	time.Time
}

// Layouts the upstream emits: RFC3339 with offset or Z, and naive
// (timezone-less) datetimes which are taken as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// Ptr returns the timestamp for a nullable column: nil when unset.
func (t Time) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
