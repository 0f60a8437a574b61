package service

import (
	"net/http"

	"brandTracker/internal/backend"
	"brandTracker/internal/logger"

	"go.uber.org/zap"
)

// Result - единый результат любого вызова сервиса. Ожидаемые ошибки
// (транспорт, backend, локальная валидация) не возвращаются как ошибки Go;
// вызывающий проверяет Success.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Total   int    `json:"total,omitempty"`
	// StatusCode - HTTP статус backend для неудачного вызова, 0 если
	// ответа не было или вызов не прошёл локально.
	StatusCode int `json:"-"`
	// ErrorCode - код BusinessError неудачного вызова.
	ErrorCode string `json:"-"`
}

func succeed[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

// accepted превращает конверт success:false за статусом 2xx в ошибку,
// чтобы отклонённый вызов не попал на путь успеха.
func accepted[T any](err error, env *backend.Envelope[T]) error {
	if err != nil {
		return err
	}
	return env.Refusal(http.StatusOK)
}

// fail логирует err и собирает неудачный результат с самым конкретным
// сообщением: текст backend, затем ошибка транспорта, затем fallback.
func fail[T any](empty T, operation string, err error, fallback string) Result[T] {
	message := backend.MessageOf(err)
	if message == "" {
		message = backend.TransportMessageOf(err)
	}
	if message == "" {
		message = fallback
	}

	logger.Error("Service: Ошибка запроса", err,
		zap.String("operation", operation),
		zap.String("message", message))

	return Result[T]{
		Success:    false,
		Data:       empty,
		Message:    message,
		StatusCode: backend.StatusOf(err),
		ErrorCode:  CodeUpstream,
	}
}

// invalid - ошибка локальной валидации до любого сетевого вызова.
func invalid[T any](empty T, operation string, err *BusinessError) Result[T] {
	logger.Warn("Service: Ошибка валидации",
		zap.String("operation", operation),
		zap.String("error_code", err.Code),
		zap.String("message", err.Message))

	return Result[T]{Success: false, Data: empty, Message: err.Message, ErrorCode: err.Code}
}
