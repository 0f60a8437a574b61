package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brandTracker/internal/logger"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// TokenSource возвращает bearer токен, сохранённый на клиенте. Пустой
// токен означает, что пользователь не вошёл.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Envelope - общий формат ответа всех эндпоинтов backend.
type Envelope[T any] struct {
	// nil, если backend не прислал поле, например при пустом теле 204
	Success *bool  `json:"success,omitempty"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// OK ложно, только если backend явно ответил success:false.
func (e Envelope[T]) OK() bool {
	return e.Success == nil || *e.Success
}

// Refusal превращает 2xx конверт с success:false в *APIError со статусом
// status и сообщением конверта; для принятого конверта возвращает nil.
func (e Envelope[T]) Refusal(status int) error {
	if e.OK() {
		return nil
	}
	return &APIError{Status: status, Message: e.Message}
}

// APIError - неудачный ответ backend: статус не 2xx или 2xx, в конверте
// которого success:false. Message хранит самый конкретный текст,
// присланный backend, если он есть.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend %d", e.Status)
}

// MessageOf достаёт сообщение backend из err или "", если его нет.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// TransportMessageOf возвращает текст транспортной ошибки (отказ в соединении,
// таймаут) или "", если err пришла не от транспорта.
func TransportMessageOf(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return ""
}

// StatusOf достаёт HTTP статус backend из err, 0 для транспортных ошибок.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.http.Timeout = timeout
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		logger.Warn("Backend: Не удалось прочитать токен", zap.Error(err))
		return ""
	}
	return token
}

// Do отправляет JSON запрос и декодирует тело 2xx ответа в out. Ответы
// не 2xx становятся *APIError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("кодирование тела запроса: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		logger.Warn("Backend: Токен отсутствует, запрос без авторизации",
			zap.String("method", method),
			zap.String("path", path))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("Backend: Ошибка транспорта", err,
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("чтение ответа: %w", err)
	}

	logger.Debug("Backend: Ответ получен",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("ms", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("разбор ответа %s %s: %w", method, path, err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
