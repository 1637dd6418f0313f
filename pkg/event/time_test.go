package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339 with offset", `"2026-03-01T12:30:45.123456+00:00"`, time.Date(2026, 3, 1, 12, 30, 45, 123456000, time.UTC)},
		{"rfc3339 zulu", `"2026-03-01T12:30:45Z"`, time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)},
		{"naive taken as utc", `"2026-03-01T12:30:45.123456"`, time.Date(2026, 3, 1, 12, 30, 45, 123456000, time.UTC)},
		{"naive without fraction", `"2026-03-01T12:30:45"`, time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)},
		{"non-utc offset normalized", `"2026-03-01T14:30:45+02:00"`, time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Time
			require.NoError(t, json.Unmarshal([]byte(tc.in), &ts))
			assert.Equal(t, tc.want, ts.Time)
		})
	}
}

func TestTimeUnmarshalAbsent(t *testing.T) {
	for _, in := range []string{`null`, `""`} {
		var ts Time
		require.NoError(t, json.Unmarshal([]byte(in), &ts))
		assert.True(t, ts.IsZero(), "input %s", in)
		assert.Nil(t, ts.Ptr())
	}
}

func TestTimeUnmarshalGarbage(t *testing.T) {
	var ts Time
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimeMarshalZeroIsNull(t *testing.T) {
	raw, err := json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestTimePtr(t *testing.T) {
	ts := Time{time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	p := ts.Ptr()
	require.NotNil(t, p)
	assert.Equal(t, ts.Time, *p)
}
