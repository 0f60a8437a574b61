package stamp_test

import (
	"encoding/json"
	"testing"
	"time"

	"brandTracker/internal/models/stamp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
		wantErr  bool
	}{
		{name: "rfc3339", raw: `"2024-05-01T10:00:00Z"`, expected: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{name: "local date-time", raw: `"2024-05-01T10:00:00"`, expected: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{name: "date only", raw: `"2024-05-01"`, expected: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "epoch millis number", raw: `1717236000000`, expected: time.UnixMilli(1717236000000).UTC()},
		{name: "epoch millis string", raw: `"1717236000000"`, expected: time.UnixMilli(1717236000000).UTC()},
		{name: "null", raw: `null`},
		{name: "empty string", raw: `""`},
		{name: "garbage", raw: `"yesterday"`, wantErr: true},
		{name: "bool", raw: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts stamp.Time
			err := json.Unmarshal([]byte(tt.raw), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTime_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(stamp.At(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-05-01T10:00:00Z"`, string(raw))

	raw, err = json.Marshal(stamp.Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
