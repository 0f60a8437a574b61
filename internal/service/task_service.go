package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"brandTracker/internal/backend"
	"brandTracker/internal/logger"
	"brandTracker/internal/models/task"

	"go.uber.org/zap"
)

// TaskService - обёртка над эндпоинтами /api/task.
type TaskService struct {
	api  Requester
	path string
}

func NewTaskService(api Requester, basePath string) *TaskService {
	return &TaskService{
		api:  api,
		path: strings.TrimRight(basePath, "/"),
	}
}

func (s *TaskService) CreateTask(ctx context.Context, in task.NewTask) Result[*task.Task] {
	const op = "create_task"
	if strings.TrimSpace(in.Title) == "" {
		return invalid[*task.Task](nil, op, NewValidationError("title", "название не может быть пустым"))
	}
	if in.Status == "" {
		in.Status = task.StatusPending
	}

	var env backend.Envelope[*task.Task]
	if err := accepted(s.api.Do(ctx, http.MethodPost, s.path+"/addTask", nil, in, &env), &env); err != nil {
		return fail[*task.Task](nil, op, err, "Не удалось создать задачу")
	}
	normalizeTask(env.Data)

	logger.Info("Service: Задача создана", zap.String("task_id", taskID(env.Data)))
	return succeed(env.Data, env.Message)
}

func (s *TaskService) ListTasks(ctx context.Context) Result[[]task.Task] {
	var env backend.Envelope[[]task.Task]
	if err := accepted(s.api.Do(ctx, http.MethodGet, s.path+"/getAllTasks", nil, nil, &env), &env); err != nil {
		return fail(make([]task.Task, 0), "list_tasks", err, "Не удалось получить задачи")
	}

	tasks := env.Data
	if tasks == nil {
		tasks = make([]task.Task, 0)
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return succeed(tasks, env.Message)
}

// GetTask возвращает конверт backend как есть, нормализуя id задачи.
func (s *TaskService) GetTask(ctx context.Context, id string) Result[*task.Task] {
	const op = "get_task"
	if id == "" {
		return invalid[*task.Task](nil, op, NewValidationError("id", "id не может быть пустым"))
	}

	var env backend.Envelope[*task.Task]
	if err := s.api.Do(ctx, http.MethodGet, s.path+"/singleTask/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return fail[*task.Task](nil, op, err, "Не удалось получить задачу")
	}
	normalizeTask(env.Data)

	return Result[*task.Task]{Success: env.OK(), Data: env.Data, Message: env.Message}
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, options ...task.UpdateOption) Result[*task.Task] {
	const op = "update_task"
	if id == "" {
		return invalid[*task.Task](nil, op, NewValidationError("id", "id не может быть пустым"))
	}

	update := task.BuildUpdate(options...)
	if update.IsEmpty() {
		return invalid[*task.Task](nil, op, NewValidationError("update", "нет полей для обновления"))
	}
	return s.put(ctx, op, id, update, "Не удалось обновить задачу")
}

// UpdateApproval выставляет флаг completedApproval задачи.
func (s *TaskService) UpdateApproval(ctx context.Context, id string, approved bool) Result[*task.Task] {
	const op = "update_approval"
	if id == "" {
		return invalid[*task.Task](nil, op, NewValidationError("id", "id не может быть пустым"))
	}
	return s.put(ctx, op, id, task.BuildUpdate(task.WithCompletedApproval(approved)), "Не удалось обновить подтверждение задачи")
}

func (s *TaskService) put(ctx context.Context, op, id string, update task.Update, fallback string) Result[*task.Task] {
	var env backend.Envelope[*task.Task]
	if err := accepted(s.api.Do(ctx, http.MethodPut, s.path+"/updateTask/"+url.PathEscape(id), nil, update, &env), &env); err != nil {
		return fail[*task.Task](nil, op, err, fallback)
	}
	normalizeTask(env.Data)

	logger.Info("Service: Задача обновлена", zap.String("task_id", id), zap.String("operation", op))
	return succeed(env.Data, env.Message)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) Result[json.RawMessage] {
	const op = "delete_task"
	if id == "" {
		return invalid[json.RawMessage](nil, op, NewValidationError("id", "id не может быть пустым"))
	}

	var env backend.Envelope[json.RawMessage]
	if err := accepted(s.api.Do(ctx, http.MethodDelete, s.path+"/deleteTask/"+url.PathEscape(id), nil, nil, &env), &env); err != nil {
		return fail[json.RawMessage](nil, op, err, "Не удалось удалить задачу")
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id))
	return succeed(env.Data, env.Message)
}

func (s *TaskService) AddComment(ctx context.Context, taskID, text string) Result[*task.Comment] {
	const op = "add_comment"
	if taskID == "" {
		return invalid[*task.Comment](nil, op, NewValidationError("taskId", "id не может быть пустым"))
	}
	if strings.TrimSpace(text) == "" {
		return invalid[*task.Comment](nil, op, NewValidationError("text", "комментарий не может быть пустым"))
	}

	body := map[string]string{"text": text}
	var env backend.Envelope[*task.Comment]
	if err := accepted(s.api.Do(ctx, http.MethodPost, s.commentsPath(taskID), nil, body, &env), &env); err != nil {
		return fail[*task.Comment](nil, op, err, "Не удалось добавить комментарий")
	}
	if env.Data != nil {
		env.Data.Normalize()
	}
	return succeed(env.Data, env.Message)
}

func (s *TaskService) ListComments(ctx context.Context, taskID string) Result[[]task.Comment] {
	const op = "list_comments"
	if taskID == "" {
		return invalid(make([]task.Comment, 0), op, NewValidationError("taskId", "id не может быть пустым"))
	}

	var env backend.Envelope[[]task.Comment]
	if err := accepted(s.api.Do(ctx, http.MethodGet, s.commentsPath(taskID), nil, nil, &env), &env); err != nil {
		return fail(make([]task.Comment, 0), op, err, "Не удалось получить комментарии")
	}

	comments := env.Data
	if comments == nil {
		comments = make([]task.Comment, 0)
	}
	for i := range comments {
		comments[i].Normalize()
	}
	return succeed(comments, env.Message)
}

func (s *TaskService) DeleteComment(ctx context.Context, taskID, commentID string) Result[json.RawMessage] {
	const op = "delete_comment"
	if taskID == "" || commentID == "" {
		return invalid[json.RawMessage](nil, op, NewValidationError("commentId", "id не может быть пустым"))
	}

	var env backend.Envelope[json.RawMessage]
	path := s.commentsPath(taskID) + "/" + url.PathEscape(commentID)
	if err := accepted(s.api.Do(ctx, http.MethodDelete, path, nil, nil, &env), &env); err != nil {
		return fail[json.RawMessage](nil, op, err, "Не удалось удалить комментарий")
	}
	return succeed(env.Data, env.Message)
}

// TaskHistory получает явные записи истории, которые backend хранит для задачи.
func (s *TaskService) TaskHistory(ctx context.Context, taskID string) Result[[]task.HistoryRecord] {
	const op = "task_history"
	if taskID == "" {
		return invalid(make([]task.HistoryRecord, 0), op, NewValidationError("taskId", "id не может быть пустым"))
	}

	var env backend.Envelope[[]task.HistoryRecord]
	path := s.path + "/" + url.PathEscape(taskID) + "/history"
	if err := accepted(s.api.Do(ctx, http.MethodGet, path, nil, nil, &env), &env); err != nil {
		return fail(make([]task.HistoryRecord, 0), op, err, "Не удалось получить историю задачи")
	}

	records := env.Data
	if records == nil {
		records = make([]task.HistoryRecord, 0)
	}
	for i := range records {
		records[i].Normalize()
	}
	return succeed(records, env.Message)
}

func (s *TaskService) commentsPath(taskID string) string {
	return s.path + "/" + url.PathEscape(taskID) + "/comments"
}

func normalizeTask(t *task.Task) {
	if t != nil {
		t.Normalize()
	}
}

func taskID(t *task.Task) string {
	if t == nil {
		return ""
	}
	return t.ID
}
