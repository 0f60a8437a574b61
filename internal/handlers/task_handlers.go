package handlers

import (
	"net/http"
	"time"

	"brandTracker/internal/handlers/dto"
	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	res := h.tasks.ListTasks(r.Context())
	if res.Success {
		if err := h.snapshots.ReplaceTasks(r.Context(), res.Data); err != nil {
			logger.Error("HTTP: Не удалось обновить снимок задач", err)
		}
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Duration("ms", time.Since(start)),
		zap.Int("count", len(res.Data)))
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request task.NewTask
	if !decodeJSON(w, r, &request) {
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задач")
	res := h.tasks.CreateTask(r.Context(), request)
	if res.Success && res.Data != nil {
		h.patchTasks(r.Context(), upsertTask(*res.Data))
	}

	logger.Info("HTTP_OUT: Создание задачи завершено",
		zap.Duration("ms", time.Since(start)),
		zap.Bool("success", res.Success))
	responseWithResult(w, http.StatusCreated, res)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	res := h.tasks.GetTask(r.Context(), chi.URLParam(r, "id"))
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	var request dto.UpdateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	if field := request.Invalid(); field != "" {
		handleBusinessError(w, service.NewValidationError(field, "неизвестное значение"))
		return
	}

	var target *brand.Brand
	if request.BrandID != nil {
		brands, _ := h.loadBrands(r.Context())
		b, ok := h.engine.FindBrand(brands, *request.BrandID)
		if !ok {
			handleBusinessError(w, service.NewNotFound("бренд", request.BrandID.String()))
			return
		}
		target = &b
	}

	opts := request.Options(target)
	res := h.tasks.UpdateTask(r.Context(), id, opts...)
	if res.Success {
		if res.Data != nil && res.Data.ID != "" {
			h.patchTasks(r.Context(), upsertTask(*res.Data))
		} else {
			h.patchTasks(r.Context(), updateTask(id, task.BuildUpdate(opts...)))
		}
	}

	logger.Info("HTTP_OUT: Обновление задачи завершено",
		zap.Duration("ms", time.Since(start)),
		zap.String("task_id", id),
		zap.Bool("success", res.Success))
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) UpdateApproval(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	var request dto.ApprovalRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if request.CompletedApproval == nil {
		handleBusinessError(w, service.NewValidationError("completedApproval", "значение обязательно"))
		return
	}

	approved := *request.CompletedApproval
	res := h.tasks.UpdateApproval(r.Context(), id, approved)
	if res.Success {
		h.patchTasks(r.Context(), updateTask(id, task.BuildUpdate(task.WithCompletedApproval(approved))))
	}
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	res := h.tasks.DeleteTask(r.Context(), id)
	if res.Success {
		h.patchTasks(r.Context(), removeTask(id))
	}

	logger.Info("HTTP_OUT: Удаление задачи завершено",
		zap.Duration("ms", time.Since(start)),
		zap.String("task_id", id),
		zap.Bool("success", res.Success))
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	responseWithResult(w, http.StatusOK, h.tasks.ListComments(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CommentRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	responseWithResult(w, http.StatusCreated, h.tasks.AddComment(r.Context(), chi.URLParam(r, "id"), request.Text))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	res := h.tasks.DeleteComment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "commentId"))
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) TaskHistory(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	responseWithResult(w, http.StatusOK, h.tasks.TaskHistory(r.Context(), chi.URLParam(r, "id")))
}
