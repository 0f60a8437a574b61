package task

import "brandTracker/internal/models/brand"

// Update - частичное тело PUT /api/task/updateTask/{id}. Поля со значением nil
// в тело запроса не попадают.
type Update struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Status            *Status    `json:"status,omitempty"`
	Priority          *Priority  `json:"priority,omitempty"`
	TaskType          *string    `json:"taskType,omitempty"`
	DueDate           *Timestamp `json:"dueDate,omitempty"`
	AssignedTo        *string    `json:"assignedTo,omitempty"`
	Brand             *string    `json:"brand,omitempty"`
	Company           *string    `json:"company,omitempty"`
	BrandID           *brand.ID  `json:"brandId,omitempty"`
	CompletedApproval *bool      `json:"completedApproval,omitempty"`
}

type UpdateOption func(*Update)

// BuildUpdate применяет opts по порядку; nil опции пропускаются.
func BuildUpdate(opts ...UpdateOption) Update {
	var u Update
	for _, opt := range opts {
		if opt != nil {
			opt(&u)
		}
	}
	return u
}

// IsEmpty сообщает, что отправлять нечего.
func (u Update) IsEmpty() bool {
	return u == Update{}
}

func WithTitle(title string) UpdateOption {
	if title == "" {
		return nil
	}
	return func(u *Update) {
		u.Title = &title
	}
}

func WithDescription(description string) UpdateOption {
	return func(u *Update) {
		u.Description = &description
	}
}

func WithStatus(status Status) UpdateOption {
	if !status.IsValid() {
		return nil
	}
	return func(u *Update) {
		u.Status = &status
	}
}

func WithPriority(priority Priority) UpdateOption {
	if !priority.IsValid() {
		return nil
	}
	return func(u *Update) {
		u.Priority = &priority
	}
}

func WithTaskType(taskType string) UpdateOption {
	if taskType == "" {
		return nil
	}
	return func(u *Update) {
		u.TaskType = &taskType
	}
}

func WithDueDate(due Timestamp) UpdateOption {
	if due.IsZero() {
		return nil
	}
	return func(u *Update) {
		u.DueDate = &due
	}
}

func WithAssignee(key string) UpdateOption {
	if key == "" {
		return nil
	}
	return func(u *Update) {
		u.AssignedTo = &key
	}
}

func WithBrand(b brand.Brand) UpdateOption {
	return func(u *Update) {
		u.Brand = &b.Name
		u.Company = &b.Company
		if !b.Synthetic && b.ID != "" {
			id := b.ID
			u.BrandID = &id
		}
	}
}

func WithCompletedApproval(approved bool) UpdateOption {
	return func(u *Update) {
		u.CompletedApproval = &approved
	}
}

// Apply накладывает обновление на локальную копию t так же, как слой
// представлений применяет оптимистичное обновление после успешного вызова.
func (u Update) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.TaskType != nil {
		t.TaskType = *u.TaskType
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.AssignedTo != nil {
		t.AssignedTo = KeyRef(*u.AssignedTo)
		t.AssignedToName = ""
	}
	if u.Brand != nil {
		t.Brand = *u.Brand
	}
	if u.Company != nil {
		t.Company = *u.Company
	}
	if u.BrandID != nil {
		t.BrandID = *u.BrandID
	}
	if u.CompletedApproval != nil {
		approved := *u.CompletedApproval
		t.CompletedApproval = &approved
	}
	return t
}
