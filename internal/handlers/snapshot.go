package handlers

import (
	"context"
	"errors"
	"slices"

	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/repository"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// freshness сообщает, вычислено ли представление по живым данным или по
// последнему снимку, и во втором случае хранит текст ошибки.
type freshness struct {
	stale   bool
	message string
}

func (f freshness) merge(other freshness) freshness {
	if !other.stale {
		return f
	}
	if !f.stale {
		return other
	}
	return freshness{stale: true, message: f.message + "; " + other.message}
}

// loadTasks получает актуальный список задач и заменяет им снимок. При
// ошибке снимок не трогается и возвращается вместо живых данных.
func (h *Handler) loadTasks(ctx context.Context) ([]task.Task, freshness) {
	res := h.tasks.ListTasks(ctx)
	if res.Success {
		if err := h.snapshots.ReplaceTasks(ctx, res.Data); err != nil {
			logger.Error("HTTP: Не удалось обновить снимок задач", err)
		}
		return res.Data, freshness{}
	}

	cached, err := h.snapshots.Tasks(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Error("HTTP: Не удалось прочитать снимок задач", err)
	}
	if cached == nil {
		cached = make([]task.Task, 0)
	}

	logger.Warn("HTTP: Используется сохранённый снимок задач",
		zap.String("message", res.Message),
		zap.Int("count", len(cached)))
	return cached, freshness{stale: true, message: res.Message}
}

func (h *Handler) loadBrands(ctx context.Context) ([]brand.Brand, freshness) {
	res := h.brands.ListBrands(ctx, brand.Query{})
	if res.Success {
		if err := h.snapshots.ReplaceBrands(ctx, res.Data); err != nil {
			logger.Error("HTTP: Не удалось обновить снимок брендов", err)
		}
		return res.Data, freshness{}
	}

	cached, err := h.snapshots.Brands(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Error("HTTP: Не удалось прочитать снимок брендов", err)
	}
	if cached == nil {
		cached = make([]brand.Brand, 0)
	}

	logger.Warn("HTTP: Используется сохранённый снимок брендов",
		zap.String("message", res.Message),
		zap.Int("count", len(cached)))
	return cached, freshness{stale: true, message: res.Message}
}

// loadAll получает оба списка параллельно.
func (h *Handler) loadAll(ctx context.Context) ([]brand.Brand, []task.Task, freshness) {
	var (
		brands      []brand.Brand
		tasks       []task.Task
		brandsFresh freshness
		tasksFresh  freshness
	)

	var wg conc.WaitGroup
	wg.Go(func() { brands, brandsFresh = h.loadBrands(ctx) })
	wg.Go(func() { tasks, tasksFresh = h.loadTasks(ctx) })
	wg.Wait()

	return brands, tasks, brandsFresh.merge(tasksFresh)
}

// patchTasks применяет оптимистичное локальное изменение к снимку задач.
// До первой успешной загрузки ничего не происходит.
func (h *Handler) patchTasks(ctx context.Context, patch func([]task.Task) []task.Task) {
	tasks, err := h.snapshots.Tasks(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err != nil {
		logger.Error("HTTP: Не удалось прочитать снимок задач", err)
		return
	}
	if err := h.snapshots.ReplaceTasks(ctx, patch(tasks)); err != nil {
		logger.Error("HTTP: Не удалось обновить снимок задач", err)
	}
}

func (h *Handler) patchBrands(ctx context.Context, patch func([]brand.Brand) []brand.Brand) {
	brands, err := h.snapshots.Brands(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err != nil {
		logger.Error("HTTP: Не удалось прочитать снимок брендов", err)
		return
	}
	if err := h.snapshots.ReplaceBrands(ctx, patch(brands)); err != nil {
		logger.Error("HTTP: Не удалось обновить снимок брендов", err)
	}
}

func upsertTask(t task.Task) func([]task.Task) []task.Task {
	return func(tasks []task.Task) []task.Task {
		i := slices.IndexFunc(tasks, func(x task.Task) bool { return x.ID == t.ID })
		if i < 0 {
			return append(tasks, t)
		}
		tasks[i] = t
		return tasks
	}
}

func updateTask(id string, update task.Update) func([]task.Task) []task.Task {
	return func(tasks []task.Task) []task.Task {
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i] = update.Apply(tasks[i])
			}
		}
		return tasks
	}
}

func removeTask(id string) func([]task.Task) []task.Task {
	return func(tasks []task.Task) []task.Task {
		return slices.DeleteFunc(tasks, func(t task.Task) bool { return t.ID == id })
	}
}

func upsertBrand(b brand.Brand) func([]brand.Brand) []brand.Brand {
	return func(brands []brand.Brand) []brand.Brand {
		i := slices.IndexFunc(brands, func(x brand.Brand) bool { return x.ID == b.ID })
		if i < 0 {
			return append(brands, b)
		}
		brands[i] = b
		return brands
	}
}

func removeBrand(id brand.ID) func([]brand.Brand) []brand.Brand {
	return func(brands []brand.Brand) []brand.Brand {
		return slices.DeleteFunc(brands, func(b brand.Brand) bool { return b.ID == id })
	}
}
