// Package reminder планирует напоминания о приёме лекарств и ведёт учёт
// идентификаторов триггеров по каждому лекарству.
package reminder

import (
	"context"
	"time"
)

// Content содержимое уведомления
type Content struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Sound bool              `json:"sound"`
	Data  map[string]string `json:"data,omitempty"`
}

// DailyTrigger повторяющийся триггер по времени суток.
// Weekday ограничивает срабатывание одним днём недели.
type DailyTrigger struct {
	Hour    int           `json:"hour"`
	Minute  int           `json:"minute"`
	Weekday *time.Weekday `json:"weekday,omitempty"`
}

// Matches срабатывает ли триггер в минуту t
func (d DailyTrigger) Matches(t time.Time) bool {
	if t.Hour() != d.Hour || t.Minute() != d.Minute {
		return false
	}
	return d.Weekday == nil || *d.Weekday == t.Weekday()
}

// Scheduler планировщик уведомлений платформы
type Scheduler interface {
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, content Content, trigger DailyTrigger) (string, error)
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
}

const minutesPerDay = 24 * 60

// subtractMinutes сдвигает триггер назад, переносит час и день недели через границы
func subtractMinutes(t DailyTrigger, minutes int) DailyTrigger {
	total := t.Hour*60 + t.Minute - minutes
	days := 0
	for total < 0 {
		total += minutesPerDay
		days--
	}
	for total >= minutesPerDay {
		total -= minutesPerDay
		days++
	}
	out := DailyTrigger{Hour: total / 60, Minute: total % 60}
	if t.Weekday != nil {
		wd := time.Weekday(((int(*t.Weekday)+days)%7 + 7) % 7)
		out.Weekday = &wd
	}
	return out
}
