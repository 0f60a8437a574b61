package views

import (
	"time"

	"brandTracker/internal/models/task"
)

type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
}

// IsOverdue: задача не завершена и срок раньше now. Задача без срока не бывает просроченной.
func IsOverdue(t task.Task, now time.Time) bool {
	return t.Status != task.StatusCompleted && !t.DueDate.IsZero() && t.DueDate.Before(now)
}

func Aggregate(tasks []task.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			s.Completed++
		case task.StatusPending:
			s.Pending++
		case task.StatusInProgress:
			s.InProgress++
		}

		if IsOverdue(t, now) {
			s.Overdue++
		}

		switch t.Priority {
		case task.PriorityHigh:
			s.High++
		case task.PriorityMedium:
			s.Medium++
		case task.PriorityLow:
			s.Low++
		}
	}
	return s
}
