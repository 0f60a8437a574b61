package service

import (
	"context"
	"net/url"
)

// Requester - REST транспорт, на котором построены сервисы; его реализует *backend.Client.
type Requester interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}
