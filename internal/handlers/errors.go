package handlers

import (
	"errors"
	"net/http"

	"brandTracker/internal/logger"
	"brandTracker/internal/service"

	"go.uber.org/zap"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode,
		toPayload("success", false),
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case codeInProgress:
		return http.StatusConflict
	case service.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// statusForResult выбирает статус для неудачного результата сервиса: 4xx backend
// передаются как есть, любая другая ошибка upstream становится 502.
func statusForResult(code string, upstream int) int {
	if code == service.CodeUpstream && upstream >= 400 && upstream < 500 {
		return upstream
	}
	return mapBusinessErrorToHTTP(code)
}
