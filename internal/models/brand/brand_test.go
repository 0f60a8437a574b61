package brand_test

import (
	"encoding/json"
	"testing"
	"time"

	"brandTracker/internal/models/brand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Unmarshal(t *testing.T) {
	tests := []struct {
		raw      string
		expected brand.ID
		wantErr  bool
	}{
		{raw: `"65a1"`, expected: "65a1"},
		{raw: `17`, expected: "17"},
		{raw: `null`, expected: ""},
		{raw: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var id brand.ID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestBrand_Normalize(t *testing.T) {
	var b brand.Brand
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"x1","name":"Alpha","company":"Acme"}`), &b))
	b.Normalize()

	assert.Equal(t, brand.ID("x1"), b.ID)
	assert.Equal(t, brand.ID("x1"), b.MongoID)
}

func TestBrand_SameIdentity(t *testing.T) {
	a := brand.Brand{Name: "Alpha", Company: "Acme"}

	assert.True(t, a.SameIdentity(brand.Brand{Name: "ALPHA", Company: "acme"}))
	assert.False(t, a.SameIdentity(brand.Brand{Name: "Alpha", Company: "Other"}))
}

func TestIsSyntheticID(t *testing.T) {
	assert.True(t, brand.IsSyntheticID("default-3"))
	assert.False(t, brand.IsSyntheticID("65a1"))
	assert.False(t, brand.IsSyntheticID(""))
}

func TestBrand_DecodeCreatedAt(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{name: "epoch millis", raw: `{"_id":"b1","name":"A","company":"B","createdAt":1717236000000}`, expected: time.UnixMilli(1717236000000).UTC()},
		{name: "local date-time", raw: `{"_id":"b1","name":"A","company":"B","createdAt":"2024-05-01T10:00:00"}`, expected: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{name: "rfc3339", raw: `{"_id":"b1","name":"A","company":"B","createdAt":"2024-05-01T10:00:00Z"}`, expected: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{name: "absent", raw: `{"_id":"b1","name":"A","company":"B"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b brand.Brand
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &b))
			assert.True(t, tt.expected.Equal(b.CreatedAt.Time), "got %v", b.CreatedAt.Time)
		})
	}
}

func TestBrand_EncodeOmitsAbsentCreatedAt(t *testing.T) {
	raw, err := json.Marshal(brand.Brand{ID: "b1", Name: "A", Company: "B"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "createdAt")
}
