package handlers

import (
	"errors"
	"net/http"
	"time"

	"brandTracker/internal/handlers/dto"
	"brandTracker/internal/invite"
	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const codeInProgress = "IN_PROGRESS"

func (h *Handler) BrandListing(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	filter := dto.BrandFilterFromQuery(r.URL.Query())
	brands, tasks, fresh := h.loadAll(r.Context())

	listing := h.engine.Brands(brands, tasks, filter)

	logger.Info("HTTP_OUT: Список брендов",
		zap.Duration("ms", time.Since(start)),
		zap.Int("brands", listing.Total),
		zap.Bool("stale", fresh.stale))
	responseWithView(w, listing, fresh)
}

func (h *Handler) BrandDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := brand.ID(chi.URLParam(r, "id"))
	filter := dto.TaskFilterFromQuery(r.URL.Query())
	brands, tasks, fresh := h.loadAll(r.Context())

	b, ok := h.engine.FindBrand(brands, id)
	if !ok {
		handleBusinessError(w, service.NewNotFound("бренд", id.String()))
		return
	}

	detail := h.engine.BrandDetail(b, tasks, filter)

	logger.Info("HTTP_OUT: Карточка бренда",
		zap.Duration("ms", time.Since(start)),
		zap.String("brand_id", id.String()),
		zap.Int("tasks", detail.Filtered))
	responseWithView(w, detail, fresh)
}

func (h *Handler) BrandHistory(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := brand.ID(chi.URLParam(r, "id"))
	brands, tasks, fresh := h.loadAll(r.Context())

	b, ok := h.engine.FindBrand(brands, id)
	if !ok {
		handleBusinessError(w, service.NewNotFound("бренд", id.String()))
		return
	}

	entries := h.engine.History(tasks, &b, r.URL.Query().Get("task"))
	responseWithView(w, entries, fresh)
}

func (h *Handler) TaskStats(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	tasks, fresh := h.loadTasks(r.Context())
	responseWithView(w, h.engine.Stats(tasks), fresh)
}

func (h *Handler) InviteToBrand(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := brand.ID(chi.URLParam(r, "id"))

	var request dto.InviteRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	brands, _ := h.loadBrands(r.Context())
	b, ok := h.engine.FindBrand(brands, id)
	if !ok {
		handleBusinessError(w, service.NewNotFound("бренд", id.String()))
		return
	}

	outcome, err := h.invites.Submit(r.Context(), h.form(b.ID), b, request.Email)
	switch {
	case errors.Is(err, invite.ErrEmailRequired), errors.Is(err, invite.ErrInvalidEmail):
		handleBusinessError(w, service.NewValidationError("email", err.Error()))
		return
	case errors.Is(err, invite.ErrInProgress):
		handleBusinessError(w, service.NewBusinessError(codeInProgress, err.Error(),
			service.ToDetail("brand_id", b.ID)))
		return
	case err != nil:
		responseWithJSON(w, http.StatusBadGateway,
			toPayload("success", false),
			toPayload("error", service.CodeUpstream),
			toPayload("message", outcome.Message),
		)
		return
	}

	logger.Info("HTTP_OUT: Приглашение отправлено",
		zap.Duration("ms", time.Since(start)),
		zap.String("brand_id", b.ID.String()))
	responseWithJSON(w, http.StatusOK,
		toPayload("success", true),
		toPayload("data", outcome.Invitation),
		toPayload("message", outcome.Message),
		toPayload("closeAfterMs", outcome.CloseAfter.Milliseconds()),
	)
}
