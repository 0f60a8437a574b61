package views

import (
	"slices"
	"strings"
	"time"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/models/user"
)

// All - значение неактивного измерения фильтра.
const All = "all"

// StatusOverdue - значение фильтра, а не статус задачи: отбирает задачи по IsOverdue.
const StatusOverdue = "overdue"

type TaskFilter struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	TaskType string `json:"taskType"`
	Assignee string `json:"assignee"`
	Search   string `json:"search"`
}

func DefaultTaskFilter() TaskFilter {
	return TaskFilter{Status: All, Priority: All, TaskType: All, Assignee: All}
}

type BrandFilter struct {
	Search   string `json:"search"`
	Company  string `json:"company"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

func DefaultBrandFilter() BrandFilter {
	return BrandFilter{Company: All, Brand: All, Category: All, Status: All}
}

func isActive(v string) bool {
	return v != "" && v != All
}

// FilterTasks сужает задачи до задач бренда b (если он задан) и применяет
// все активные измерения f. Измерения объединяются через И; поиск идёт через ИЛИ
// по названию, описанию и отображаемому имени исполнителя.
func FilterTasks(tasks []task.Task, b *brand.Brand, f TaskFilter, roster user.Roster, now time.Time) []task.Task {
	search := strings.ToLower(f.Search)

	res := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if b != nil && !BelongsTo(t, *b) {
			continue
		}
		if search != "" && !matchesSearch(t, search, roster) {
			continue
		}
		if isActive(f.Status) && !matchesStatus(t, f.Status, now) {
			continue
		}
		if isActive(f.Priority) && string(t.Priority) != f.Priority {
			continue
		}
		if isActive(f.TaskType) && t.TaskType != f.TaskType {
			continue
		}
		if isActive(f.Assignee) && !matchesAssignee(t, f.Assignee, roster) {
			continue
		}
		res = append(res, t)
	}
	return res
}

func matchesSearch(t task.Task, search string, roster user.Roster) bool {
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search) ||
		strings.Contains(strings.ToLower(DisplayName(t, SideAssignedTo, roster)), search)
}

func matchesStatus(t task.Task, status string, now time.Time) bool {
	if status == StatusOverdue {
		return IsOverdue(t, now)
	}
	return string(t.Status) == status
}

func matchesAssignee(t task.Task, assignee string, roster user.Roster) bool {
	switch t.AssignedTo.Kind {
	case task.RefKey:
		if t.AssignedTo.Key == assignee {
			return true
		}
	case task.RefUser:
		if t.AssignedTo.User.Matches(assignee) {
			return true
		}
	case task.RefNone:
	}
	return DisplayName(t, SideAssignedTo, roster) == assignee
}

// FilterBrands применяет фильтры списка брендов; поиск идёт через ИЛИ по названию,
// компании, категории и описанию.
func FilterBrands(brands []brand.Brand, f BrandFilter) []brand.Brand {
	search := strings.ToLower(f.Search)

	res := make([]brand.Brand, 0, len(brands))
	for _, b := range brands {
		if search != "" && !brandMatchesSearch(b, search) {
			continue
		}
		if isActive(f.Company) && b.Company != f.Company {
			continue
		}
		if isActive(f.Brand) && b.Name != f.Brand {
			continue
		}
		if isActive(f.Category) && b.Category != f.Category {
			continue
		}
		if isActive(f.Status) && string(b.Status) != f.Status {
			continue
		}
		res = append(res, b)
	}
	return res
}

func brandMatchesSearch(b brand.Brand, search string) bool {
	return strings.Contains(strings.ToLower(b.Name), search) ||
		strings.Contains(strings.ToLower(b.Company), search) ||
		strings.Contains(strings.ToLower(b.Category), search) ||
		strings.Contains(strings.ToLower(b.Description), search)
}

// Companies - уникальные непустые компании, отсортированные.
func Companies(brands []brand.Brand) []string {
	return distinct(brands, func(b brand.Brand) string { return b.Company })
}

// Categories - уникальные непустые категории, отсортированные.
func Categories(brands []brand.Brand) []string {
	return distinct(brands, func(b brand.Brand) string { return b.Category })
}

func distinct(brands []brand.Brand, field func(brand.Brand) string) []string {
	seen := make(map[string]struct{}, len(brands))
	res := make([]string, 0, len(brands))
	for _, b := range brands {
		v := field(b)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	slices.Sort(res)
	return res
}
