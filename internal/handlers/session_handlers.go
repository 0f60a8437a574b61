package handlers

import (
	"net/http"
	"strings"
	"time"

	"brandTracker/internal/handlers/dto"
	"brandTracker/internal/logger"

	"go.uber.org/zap"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshots.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Хранилище снимков недоступно", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("message", err.Error()),
		)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	token, err := h.tokens.Token(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка чтения токена", err)
		responseWithError(w, http.StatusInternalServerError, "не удалось прочитать токен")
		return
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("success", true),
		toPayload("authenticated", token != ""),
	)
}

func (h *Handler) PutToken(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.TokenRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	token := strings.TrimSpace(request.Token)
	if token == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "token"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "токен не может быть пустым")
		return
	}

	if err := h.tokens.SetToken(r.Context(), token); err != nil {
		logger.Error("HTTP: Ошибка сохранения токена", err)
		responseWithError(w, http.StatusInternalServerError, "не удалось сохранить токен")
		return
	}

	logger.Info("HTTP_OUT: Токен сохранён", zap.Duration("ms", time.Since(start)))
	responseWithJSON(w, http.StatusOK, toPayload("success", true), toPayload("message", "Токен сохранён"))
}

func (h *Handler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	if err := h.tokens.ClearToken(r.Context()); err != nil {
		logger.Error("HTTP: Ошибка удаления токена", err)
		responseWithError(w, http.StatusInternalServerError, "не удалось удалить токен")
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("success", true), toPayload("message", "Токен удалён"))
}
