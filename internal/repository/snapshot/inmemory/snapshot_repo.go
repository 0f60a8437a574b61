package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	repo "brandTracker/internal/repository"

	"go.uber.org/zap"
)

type SnapshotStorage struct {
	mtx    *sync.RWMutex
	tasks  []task.Task
	brands []brand.Brand
	// nil до первой замены
	tasksAt  *time.Time
	brandsAt *time.Time
}

func NewSnapshotStorage() *SnapshotStorage {
	return &SnapshotStorage{
		mtx: &sync.RWMutex{},
	}
}

func (s *SnapshotStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Хранилище снимков в памяти доступно")
	return nil
}

func (s *SnapshotStorage) ReplaceTasks(ctx context.Context, tasks []task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	s.tasks = slices.Clone(tasks)
	s.tasksAt = &now

	logger.Debug("Repository: Снимок задач заменён", zap.Int("count", len(tasks)))
	return nil
}

// Tasks возвращает копию, сохранённый снимок снаружи не изменить.
func (s *SnapshotStorage) Tasks(ctx context.Context) ([]task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.tasksAt == nil {
		return nil, repo.ErrNotFound
	}
	return slices.Clone(s.tasks), nil
}

func (s *SnapshotStorage) ReplaceBrands(ctx context.Context, brands []brand.Brand) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	s.brands = slices.Clone(brands)
	s.brandsAt = &now

	logger.Debug("Repository: Снимок брендов заменён", zap.Int("count", len(brands)))
	return nil
}

func (s *SnapshotStorage) Brands(ctx context.Context) ([]brand.Brand, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.brandsAt == nil {
		return nil, repo.ErrNotFound
	}
	return slices.Clone(s.brands), nil
}
