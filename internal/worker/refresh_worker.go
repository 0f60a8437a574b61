package worker

import (
	"context"
	"time"

	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/service"
	"brandTracker/internal/views"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

type TaskLister interface {
	ListTasks(ctx context.Context) service.Result[[]task.Task]
}

type BrandLister interface {
	ListBrands(ctx context.Context, q brand.Query) service.Result[[]brand.Brand]
}

type SnapshotWriter interface {
	ReplaceTasks(ctx context.Context, tasks []task.Task) error
	ReplaceBrands(ctx context.Context, brands []brand.Brand) error
}

// RefreshWorker периодически забирает оба списка из backend в хранилище
// снимков. Неудачная загрузка оставляет прежний снимок на месте.
type RefreshWorker struct {
	tasks    TaskLister
	brands   BrandLister
	repo     SnapshotWriter
	interval time.Duration
	now      views.Clock
}

func NewRefreshWorker(tasks TaskLister, brands BrandLister, repo SnapshotWriter, interval *time.Duration, now views.Clock) *RefreshWorker {
	var intervalToSet time.Duration
	if interval == nil || *interval <= 0 {
		intervalToSet = time.Minute
	} else {
		intervalToSet = *interval
	}

	if now == nil {
		now = time.Now
	}

	return &RefreshWorker{
		tasks:    tasks,
		brands:   brands,
		repo:     repo,
		interval: intervalToSet,
		now:      now,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Refresh(ctx)

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновое обновление снимков", zap.Time("started_at", time.Now()))
			w.Refresh(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновое обновление останавливается")
			return
		}
	}
}

// Refresh параллельно получает задачи и бренды и заменяет каждый снимок,
// загрузка которого удалась. Возвращает число просроченных задач.
func (w *RefreshWorker) Refresh(ctx context.Context) int {
	start := time.Now()

	var (
		tasksRes  service.Result[[]task.Task]
		brandsRes service.Result[[]brand.Brand]
	)

	var wg conc.WaitGroup
	wg.Go(func() { tasksRes = w.tasks.ListTasks(ctx) })
	wg.Go(func() { brandsRes = w.brands.ListBrands(ctx, brand.Query{}) })
	wg.Wait()

	overdue := 0
	if tasksRes.Success {
		if err := w.repo.ReplaceTasks(ctx, tasksRes.Data); err != nil {
			logger.Error("Worker: Ошибка сохранения снимка задач", err)
		}
		now := w.now()
		for _, t := range tasksRes.Data {
			if views.IsOverdue(t, now) {
				overdue++
			}
		}
	} else {
		logger.Warn("Worker: Ошибка получения задач", zap.String("message", tasksRes.Message))
	}

	if brandsRes.Success {
		if err := w.repo.ReplaceBrands(ctx, brandsRes.Data); err != nil {
			logger.Error("Worker: Ошибка сохранения снимка брендов", err)
		}
	} else {
		logger.Warn("Worker: Ошибка получения брендов", zap.String("message", brandsRes.Message))
	}

	logger.Info(
		"Worker: Завершение обновления снимков",
		zap.Duration("ms", time.Since(start)),
		zap.Int("tasks", len(tasksRes.Data)),
		zap.Int("brands", len(brandsRes.Data)),
		zap.Int("overdue", overdue),
	)
	return overdue
}
