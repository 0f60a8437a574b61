package task

import (
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/user"
)

type Status string
type Priority string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusOnHold     Status = "on-hold"
)

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusOnHold:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type Task struct {
	MongoID           string          `json:"_id,omitempty"`
	ID                string          `json:"id,omitempty"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	DueDate           Timestamp       `json:"dueDate,omitzero"`
	Status            Status          `json:"status"`
	Priority          Priority        `json:"priority,omitempty"`
	TaskType          string          `json:"taskType,omitempty"`
	AssignedTo        Ref             `json:"assignedTo,omitzero"`
	AssignedBy        Ref             `json:"assignedBy,omitzero"`
	AssignedToName    string          `json:"assignedToName,omitempty"`
	AssignedByName    string          `json:"assignedByName,omitempty"`
	CreatedAt         Timestamp       `json:"createdAt,omitzero"`
	UpdatedAt         Timestamp       `json:"updatedAt,omitzero"`
	History           []HistoryRecord `json:"history,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	Company           string          `json:"company,omitempty"`
	BrandID           brand.ID        `json:"brandId,omitempty"`
	CompletedApproval *bool           `json:"completedApproval,omitempty"`
}

// Normalize копирует каждый _id backend в id для задачи и вложенных записей.
func (t *Task) Normalize() {
	if t.MongoID != "" {
		t.ID = t.MongoID
	}
	t.AssignedTo.normalize()
	t.AssignedBy.normalize()
	for i := range t.History {
		t.History[i].Normalize()
	}
}

// HistoryRecord - явная запись истории, которую хранит backend.
type HistoryRecord struct {
	MongoID     string    `json:"_id,omitempty"`
	ID          string    `json:"id,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	User        Ref       `json:"user,omitzero"`
	UserName    string    `json:"userName,omitempty"`
	Timestamp   Timestamp `json:"timestamp,omitzero"`
}

func (h *HistoryRecord) Normalize() {
	if h.MongoID != "" {
		h.ID = h.MongoID
	}
	h.User.normalize()
}

type Comment struct {
	MongoID   string    `json:"_id,omitempty"`
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	User      Ref       `json:"user,omitzero"`
	CreatedAt Timestamp `json:"createdAt,omitzero"`
}

func (c *Comment) Normalize() {
	if c.MongoID != "" {
		c.ID = c.MongoID
	}
	c.User.normalize()
}

// NewTask - тело POST /api/task/addTask.
type NewTask struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     Timestamp `json:"dueDate,omitzero"`
	Status      Status    `json:"status,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	TaskType    string    `json:"taskType,omitempty"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Company     string    `json:"company,omitempty"`
	BrandID     brand.ID  `json:"brandId,omitempty"`
}

// Lookup находит пользователя справочника, на которого указывает ссылка.
func Lookup(r Ref, roster user.Roster) (user.User, bool) {
	switch r.Kind {
	case RefUser:
		return r.User, true
	case RefKey:
		return roster.Find(r.Key)
	default:
		return user.User{}, false
	}
}
