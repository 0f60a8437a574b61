package handlers

import (
	"context"
	"encoding/json"

	"brandTracker/internal/invite"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/service"
)

type TaskService interface {
	CreateTask(ctx context.Context, in task.NewTask) service.Result[*task.Task]
	ListTasks(ctx context.Context) service.Result[[]task.Task]
	GetTask(ctx context.Context, id string) service.Result[*task.Task]
	UpdateTask(ctx context.Context, id string, options ...task.UpdateOption) service.Result[*task.Task]
	UpdateApproval(ctx context.Context, id string, approved bool) service.Result[*task.Task]
	DeleteTask(ctx context.Context, id string) service.Result[json.RawMessage]
	AddComment(ctx context.Context, taskID, text string) service.Result[*task.Comment]
	ListComments(ctx context.Context, taskID string) service.Result[[]task.Comment]
	DeleteComment(ctx context.Context, taskID, commentID string) service.Result[json.RawMessage]
	TaskHistory(ctx context.Context, taskID string) service.Result[[]task.HistoryRecord]
}

type BrandService interface {
	ListBrands(ctx context.Context, q brand.Query) service.Result[[]brand.Brand]
	GetBrand(ctx context.Context, id brand.ID) service.Result[*brand.Brand]
	CreateBrand(ctx context.Context, dto brand.CreateBrandDto) service.Result[*brand.Brand]
	UpdateBrand(ctx context.Context, id brand.ID, update brand.Update) service.Result[*brand.Brand]
	DeleteBrand(ctx context.Context, id brand.ID) service.Result[json.RawMessage]
}

type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type InviteWorkflow interface {
	Submit(ctx context.Context, form *invite.Form, b brand.Brand, email string) (invite.Outcome, error)
}
