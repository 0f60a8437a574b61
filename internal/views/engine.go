package views

import (
	"time"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/models/user"
)

// Clock возвращает текущее время; тесты подставляют фиксированное.
type Clock func() time.Time

// Engine связывает чистые функции представлений с часами, справочником
// пользователей и каталогом брендов по умолчанию.
type Engine struct {
	clock   Clock
	roster  user.Roster
	catalog []brand.Brand
}

func NewEngine(clock Clock, roster user.Roster, catalog []brand.Brand) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		clock:   clock,
		roster:  roster,
		catalog: catalog,
	}
}

func (e *Engine) Now() time.Time {
	return e.clock()
}

func (e *Engine) Roster() user.Roster {
	return e.roster
}

type TaskView struct {
	task.Task
	AssigneeDisplay string `json:"assigneeDisplay"`
	AssignerDisplay string `json:"assignerDisplay"`
	Overdue         bool   `json:"isOverdue"`
}

type BrandSummary struct {
	brand.Brand
	TaskCount int `json:"taskCount"`
}

type BrandListing struct {
	Brands     []BrandSummary `json:"brands"`
	Total      int            `json:"total"`
	Companies  []string       `json:"companies"`
	Categories []string       `json:"categories"`
}

type BrandDetail struct {
	Brand    brand.Brand `json:"brand"`
	Stats    Stats       `json:"stats"`
	Tasks    []TaskView  `json:"tasks"`
	Filtered int         `json:"filtered"`
}

// Brands объединяет каталог с брендами backend, фильтрует их и добавляет число задач.
// Списки вариантов строятся по нефильтрованному набору.
func (e *Engine) Brands(backend []brand.Brand, tasks []task.Task, f BrandFilter) BrandListing {
	all := MergeCatalog(backend, e.catalog)
	filtered := FilterBrands(all, f)
	counts := TaskCounts(tasks, filtered)

	summaries := make([]BrandSummary, 0, len(filtered))
	for _, b := range filtered {
		summaries = append(summaries, BrandSummary{Brand: b, TaskCount: counts[b.ID]})
	}

	return BrandListing{
		Brands:     summaries,
		Total:      len(summaries),
		Companies:  Companies(all),
		Categories: Categories(all),
	}
}

// FindBrand ищет по объединённому списку backend и каталога.
func (e *Engine) FindBrand(backend []brand.Brand, id brand.ID) (brand.Brand, bool) {
	return FindBrand(MergeCatalog(backend, e.catalog), id)
}

// BrandDetail считает статистику по всем задачам b и список задач,
// суженный фильтром f.
func (e *Engine) BrandDetail(b brand.Brand, tasks []task.Task, f TaskFilter) BrandDetail {
	now := e.Now()
	members := BrandTasks(tasks, b)
	filtered := FilterTasks(members, nil, f, e.roster, now)

	return BrandDetail{
		Brand:    b,
		Stats:    Aggregate(members, now),
		Tasks:    e.taskViews(filtered, now),
		Filtered: len(filtered),
	}
}

func (e *Engine) Stats(tasks []task.Task) Stats {
	return Aggregate(tasks, e.Now())
}

func (e *Engine) History(tasks []task.Task, b *brand.Brand, taskID string) []HistoryEntry {
	return History(tasks, b, taskID, e.roster)
}

func (e *Engine) TaskView(t task.Task) TaskView {
	return e.taskView(t, e.Now())
}

func (e *Engine) taskViews(tasks []task.Task, now time.Time) []TaskView {
	res := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, e.taskView(t, now))
	}
	return res
}

func (e *Engine) taskView(t task.Task, now time.Time) TaskView {
	return TaskView{
		Task:            t,
		AssigneeDisplay: DisplayName(t, SideAssignedTo, e.roster),
		AssignerDisplay: DisplayName(t, SideAssignedBy, e.roster),
		Overdue:         IsOverdue(t, now),
	}
}
