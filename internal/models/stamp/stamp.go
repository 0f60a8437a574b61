package stamp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Time принимает все форматы дат, которые присылает backend: RFC3339, дату
// без времени, локальное дата-время и миллисекунды epoch. Нулевое значение
// означает отсутствие даты.
type Time struct {
	time.Time
}

func At(t time.Time) Time {
	return Time{Time: t}
}

// Parse разбирает s по известным форматам; пустая строка даёт нулевое значение.
func Parse(s string) (Time, error) {
	if s == "" {
		return Time{}, nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{Time: t}, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Time{Time: time.UnixMilli(ms).UTC()}, nil
	}
	return Time{}, fmt.Errorf("неверный формат даты %q", s)
}

func (ts *Time) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = Time{}
		return nil
	}

	if data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("неверный формат даты %s", string(data))
		}
		*ts = Time{Time: time.UnixMilli(ms).UTC()}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func (ts Time) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.UTC().Format(time.RFC3339Nano))
}
