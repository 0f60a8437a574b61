package handlers

import (
	"encoding/json"
	"net/http"

	"brandTracker/internal/middleware"
	"brandTracker/internal/service"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func toJSON(storage map[string]any, payload Payload) {
	storage[payload.Key] = payload.Payload
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	storage := make(map[string]any)
	for _, pl := range payload {
		toJSON(storage, pl)
	}
	json.NewEncoder(w).Encode(storage)
}

func responseWithError(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code,
		toPayload("success", false),
		toPayload("message", message),
	)
}

// responseWithResult пишет результат сервиса. Неудача с кодом ошибки получает
// соответствующий HTTP статус; конверт backend с success=false без кода
// ошибки передаётся как есть.
func responseWithResult[T any](w http.ResponseWriter, okCode int, res service.Result[T]) {
	if !res.Success && res.ErrorCode != "" {
		responseWithJSON(w, statusForResult(res.ErrorCode, res.StatusCode),
			toPayload("success", false),
			toPayload("error", res.ErrorCode),
			toPayload("message", res.Message),
		)
		return
	}

	payloads := []Payload{
		toPayload("success", res.Success),
		toPayload("data", res.Data),
		toPayload("message", res.Message),
	}
	if res.Total > 0 {
		payloads = append(payloads, toPayload("total", res.Total))
	}
	responseWithJSON(w, okCode, payloads...)
}

// responseWithView пишет вычисленное представление вместе со свежестью
// данных, из которых оно получено.
func responseWithView(w http.ResponseWriter, data any, fresh freshness) {
	if fresh.stale {
		w.Header().Set(middleware.StaleHeader, "true")
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("success", true),
		toPayload("data", data),
		toPayload("stale", fresh.stale),
		toPayload("message", fresh.message),
	)
}
