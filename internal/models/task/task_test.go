package task_test

import (
	"encoding/json"
	"testing"
	"time"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_DecodeBackendShape(t *testing.T) {
	raw := `{
		"_id": "x1",
		"title": "Launch",
		"status": "in-progress",
		"priority": "high",
		"dueDate": "2024-06-01",
		"createdAt": "2024-05-01T10:00:00.000Z",
		"updatedAt": 1717236000000,
		"assignedTo": "anna@example.com",
		"assignedBy": {"_id": "u2", "name": "Ivan", "email": "ivan@example.com"},
		"brandId": 42,
		"history": [{"_id": "h1", "action": "created", "user": null}]
	}`

	var tk task.Task
	require.NoError(t, json.Unmarshal([]byte(raw), &tk))
	tk.Normalize()

	assert.Equal(t, "x1", tk.ID)
	assert.Equal(t, task.StatusInProgress, tk.Status)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), tk.DueDate.Time)
	assert.Equal(t, 2024, tk.UpdatedAt.Year())
	assert.Equal(t, task.KeyRef("anna@example.com"), tk.AssignedTo)
	assert.Equal(t, task.RefUser, tk.AssignedBy.Kind)
	assert.Equal(t, "u2", tk.AssignedBy.User.ID)
	assert.Equal(t, brand.ID("42"), tk.BrandID)
	require.Len(t, tk.History, 1)
	assert.Equal(t, "h1", tk.History[0].ID)
	assert.True(t, tk.History[0].User.IsZero())
}

func TestTask_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "bad date", raw: `{"dueDate": "01/06/2024"}`},
		{name: "bad epoch", raw: `{"dueDate": true}`},
		{name: "ref as number", raw: `{"assignedTo": 12}`},
		{name: "ref as array", raw: `{"assignedBy": ["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tk task.Task
			assert.Error(t, json.Unmarshal([]byte(tt.raw), &tk))
		})
	}
}

func TestTask_EncodeOmitsAbsentValues(t *testing.T) {
	data, err := json.Marshal(task.Task{ID: "t1", Title: "A", Status: task.StatusPending})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"t1","title":"A","status":"pending"}`, string(data))
}

func TestRef_RoundTripKinds(t *testing.T) {
	tests := []struct {
		name     string
		ref      task.Ref
		expected string
	}{
		{name: "none", ref: task.Ref{}, expected: `null`},
		{name: "key", ref: task.KeyRef("a@b.co"), expected: `"a@b.co"`},
		{name: "user", ref: task.UserRef(user.User{ID: "u1", Name: "Anna"}), expected: `{"id":"u1","name":"Anna"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestKeyRef_Empty(t *testing.T) {
	assert.True(t, task.KeyRef("").IsZero())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in       string
		expected time.Time
		wantErr  bool
	}{
		{in: "2024-03-05T08:09:10Z", expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC)},
		{in: "2024-03-05T08:09:10.123+03:00", expected: time.Date(2024, 3, 5, 5, 9, 10, 123000000, time.UTC)},
		{in: "2024-03-05T08:09:10", expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC)},
		{in: "2024-03-05 08:09:10", expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC)},
		{in: "2024-03-05", expected: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{in: "0", expected: time.UnixMilli(0).UTC()},
		{in: "", expected: time.Time{}},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := task.ParseTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestBuildUpdate(t *testing.T) {
	tests := []struct {
		name     string
		options  []task.UpdateOption
		expected string
	}{
		{
			name:     "invalid values skipped",
			options:  []task.UpdateOption{task.WithTitle(""), task.WithStatus("done"), task.WithPriority("critical"), task.WithAssignee("")},
			expected: `{}`,
		},
		{
			name:     "description may be cleared",
			options:  []task.UpdateOption{task.WithDescription("")},
			expected: `{"description":""}`,
		},
		{
			name:     "backend brand carries id",
			options:  []task.UpdateOption{task.WithBrand(brand.Brand{ID: "b1", Name: "Alpha", Company: "Acme"})},
			expected: `{"brand":"Alpha","company":"Acme","brandId":"b1"}`,
		},
		{
			name:     "catalog brand carries no id",
			options:  []task.UpdateOption{task.WithBrand(brand.Brand{ID: "default-1", Name: "Cola", Company: "Drinks", Synthetic: true})},
			expected: `{"brand":"Cola","company":"Drinks"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(task.BuildUpdate(tt.options...))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestUpdate_Apply(t *testing.T) {
	original := task.Task{
		ID:             "t1",
		Title:          "Old",
		AssignedTo:     task.UserRef(user.User{ID: "u1"}),
		AssignedToName: "Anna",
	}

	updated := task.BuildUpdate(
		task.WithTitle("New"),
		task.WithAssignee("ivan@example.com"),
		task.WithCompletedApproval(true),
	).Apply(original)

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, task.KeyRef("ivan@example.com"), updated.AssignedTo)
	assert.Empty(t, updated.AssignedToName, "stale resolved name is dropped")
	require.NotNil(t, updated.CompletedApproval)
	assert.True(t, *updated.CompletedApproval)
	assert.Equal(t, "Old", original.Title)
}

func TestLookup(t *testing.T) {
	roster := user.Roster{{ID: "u1", Name: "Anna", Email: "anna@example.com"}}

	u, ok := task.Lookup(task.KeyRef("anna@example.com"), roster)
	assert.True(t, ok)
	assert.Equal(t, "Anna", u.Name)

	_, ok = task.Lookup(task.KeyRef("nobody@example.com"), roster)
	assert.False(t, ok)

	_, ok = task.Lookup(task.Ref{}, roster)
	assert.False(t, ok)
}
