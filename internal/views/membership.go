package views

import (
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
)

// BelongsTo сообщает, привязана ли t к b по названию, компании или id бренда.
// Достаточно любого из трёх признаков; пустые значения задачи не совпадают никогда.
func BelongsTo(t task.Task, b brand.Brand) bool {
	return (t.Brand != "" && t.Brand == b.Name) ||
		(t.Company != "" && t.Company == b.Company) ||
		(t.BrandID != "" && t.BrandID == b.ID)
}

// BrandTasks возвращает задачи бренда b в исходном порядке.
func BrandTasks(tasks []task.Task, b brand.Brand) []task.Task {
	res := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if BelongsTo(t, b) {
			res = append(res, t)
		}
	}
	return res
}

// TaskCounts сопоставляет каждому id бренда число его задач. Задача с brandId
// учитывается только по id; название и компания проверяются, только если
// brandId у задачи нет вовсе. Поэтому подсчёт строже, чем BelongsTo.
func TaskCounts(tasks []task.Task, brands []brand.Brand) map[brand.ID]int {
	counts := make(map[brand.ID]int, len(brands))
	for _, b := range brands {
		n := 0
		for _, t := range tasks {
			if t.BrandID != "" {
				if t.BrandID == b.ID {
					n++
				}
				continue
			}
			if t.Brand != "" && t.Brand == b.Name && t.Company == b.Company {
				n++
			}
		}
		counts[b.ID] = n
	}
	return counts
}
