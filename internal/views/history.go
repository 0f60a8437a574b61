package views

import (
	"fmt"
	"slices"
	"time"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/models/user"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// HistoryEntry - одна строка восстановленной истории задачи. Записи
// вычисляются при каждом вызове и нигде не хранятся.
type HistoryEntry struct {
	ID          string      `json:"id"`
	Action      string      `json:"action"`
	Description string      `json:"description"`
	TaskID      string      `json:"taskId"`
	TaskTitle   string      `json:"taskTitle"`
	TaskStatus  task.Status `json:"taskStatus"`
	Actor       string      `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	BrandID     brand.ID    `json:"brandId,omitempty"`
	BrandName   string      `json:"brandName,omitempty"`
	Synthetic   bool        `json:"synthetic"`
}

// History восстанавливает историю задач бренда b (всех задач при b == nil)
// или одной задачи taskID, если он не пуст. Для каждой задачи выдаются явные
// записи, синтетическая запись "created" и, если задачу меняли после создания,
// синтетическая запись "updated". Результат отсортирован от новых к старым;
// записи с равным временем сохраняют исходный порядок.
func History(tasks []task.Task, b *brand.Brand, taskID string, roster user.Roster) []HistoryEntry {
	entries := make([]HistoryEntry, 0)

	for _, t := range tasks {
		if b != nil && !BelongsTo(t, *b) {
			continue
		}
		if taskID != "" && t.ID != taskID {
			continue
		}
		entries = append(entries, taskHistory(t, b, roster)...)
	}

	slices.SortStableFunc(entries, func(x, y HistoryEntry) int {
		return y.Timestamp.Compare(x.Timestamp)
	})
	return entries
}

func taskHistory(t task.Task, b *brand.Brand, roster user.Roster) []HistoryEntry {
	base := HistoryEntry{
		TaskID:     t.ID,
		TaskTitle:  t.Title,
		TaskStatus: t.Status,
		BrandID:    t.BrandID,
		BrandName:  t.Brand,
	}
	if b != nil {
		base.BrandID = b.ID
		base.BrandName = b.Name
	}

	entries := make([]HistoryEntry, 0, len(t.History)+2)

	for i, rec := range t.History {
		e := base
		e.ID = rec.ID
		if e.ID == "" {
			e.ID = fmt.Sprintf("%s-history-%d", t.ID, i)
		}
		e.Action = rec.Action
		e.Description = rec.Description
		if e.Description == "" {
			e.Description = fmt.Sprintf("Задача %q: %s", t.Title, rec.Action)
		}
		e.Actor = resolveName(rec.UserName, rec.User, roster)
		e.Timestamp = rec.Timestamp.Time
		entries = append(entries, e)
	}

	created := base
	created.ID = t.ID + "-created"
	created.Action = ActionCreated
	created.Description = fmt.Sprintf("Задача %q создана", t.Title)
	created.Actor = DisplayName(t, SideAssignedBy, roster)
	created.Timestamp = t.CreatedAt.Time
	created.Synthetic = true
	entries = append(entries, created)

	if !t.UpdatedAt.IsZero() && !t.UpdatedAt.Equal(t.CreatedAt.Time) {
		updated := base
		updated.ID = t.ID + "-updated"
		updated.Action = ActionUpdated
		updated.Description = fmt.Sprintf("Задача %q обновлена", t.Title)
		updated.Actor = DisplayName(t, SideAssignedTo, roster)
		updated.Timestamp = t.UpdatedAt.Time
		updated.Synthetic = true
		entries = append(entries, updated)
	}

	return entries
}
