package dto

import (
	"net/url"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/views"
)

type TokenRequest struct {
	Token string `json:"token"`
}

type InviteRequest struct {
	Email string `json:"email"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type ApprovalRequest struct {
	CompletedApproval *bool `json:"completedApproval"`
}

// UpdateTaskRequest - частичное изменение задачи. BrandID переносит задачу
// в другой бренд, в том числе в бренд каталога.
type UpdateTaskRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Status      *task.Status    `json:"status,omitempty"`
	Priority    *task.Priority  `json:"priority,omitempty"`
	TaskType    *string         `json:"taskType,omitempty"`
	DueDate     *task.Timestamp `json:"dueDate,omitempty"`
	AssignedTo  *string         `json:"assignedTo,omitempty"`
	BrandID     *brand.ID       `json:"brandId,omitempty"`
}

// Invalid возвращает имя первого поля с неизвестным значением перечисления.
func (r UpdateTaskRequest) Invalid() string {
	if r.Status != nil && !r.Status.IsValid() {
		return "status"
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		return "priority"
	}
	return ""
}

// Options превращает запрос в опции обновления; target - найденный бренд
// для BrandID, nil если бренд не меняется.
func (r UpdateTaskRequest) Options(target *brand.Brand) []task.UpdateOption {
	var opts []task.UpdateOption
	if r.Title != nil {
		opts = append(opts, task.WithTitle(*r.Title))
	}
	if r.Description != nil {
		opts = append(opts, task.WithDescription(*r.Description))
	}
	if r.Status != nil {
		opts = append(opts, task.WithStatus(*r.Status))
	}
	if r.Priority != nil {
		opts = append(opts, task.WithPriority(*r.Priority))
	}
	if r.TaskType != nil {
		opts = append(opts, task.WithTaskType(*r.TaskType))
	}
	if r.DueDate != nil {
		opts = append(opts, task.WithDueDate(*r.DueDate))
	}
	if r.AssignedTo != nil {
		opts = append(opts, task.WithAssignee(*r.AssignedTo))
	}
	if target != nil {
		opts = append(opts, task.WithBrand(*target))
	}
	return opts
}

// TaskFilterFromQuery берёт фильтр по умолчанию и переопределяет каждое
// измерение, заданное в q.
func TaskFilterFromQuery(q url.Values) views.TaskFilter {
	f := views.DefaultTaskFilter()
	override(&f.Status, q, "status")
	override(&f.Priority, q, "priority")
	override(&f.TaskType, q, "taskType")
	override(&f.Assignee, q, "assignee")
	override(&f.Search, q, "search")
	return f
}

func BrandFilterFromQuery(q url.Values) views.BrandFilter {
	f := views.DefaultBrandFilter()
	override(&f.Search, q, "search")
	override(&f.Company, q, "company")
	override(&f.Brand, q, "brand")
	override(&f.Category, q, "category")
	override(&f.Status, q, "status")
	return f
}

// BrandQuery читает фильтры GET /brands, которые применяет backend.
func BrandQuery(q url.Values) brand.Query {
	return brand.Query{
		Search:  q.Get("search"),
		Status:  brand.Status(q.Get("status")),
		Company: q.Get("company"),
	}
}

func override(dst *string, q url.Values, key string) {
	if v := q.Get(key); v != "" {
		*dst = v
	}
}
