package task

import (
	"time"

	"brandTracker/internal/models/stamp"
)

// Timestamp - терпимая к формату дата backend, общая для задач и брендов.
type Timestamp = stamp.Time

func At(t time.Time) Timestamp {
	return stamp.At(t)
}

func ParseTimestamp(s string) (Timestamp, error) {
	return stamp.Parse(s)
}
