package repository

import (
	"context"
	"errors"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
)

// ErrNotFound: снимок ещё ни разу не сохранялся.
var ErrNotFound = errors.New("repository: снимок не найден")

// SnapshotRepository хранит последние успешно полученные списки задач и брендов.
// Каждый Replace заменяет список целиком, побеждает последняя запись.
type SnapshotRepository interface {
	HealthCheck(ctx context.Context) error
	ReplaceTasks(ctx context.Context, tasks []task.Task) error
	Tasks(ctx context.Context) ([]task.Task, error)
	ReplaceBrands(ctx context.Context, brands []brand.Brand) error
	Brands(ctx context.Context) ([]brand.Brand, error)
}
