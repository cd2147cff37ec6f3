package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownTrigger = errors.New("unknown trigger")

// Trigger зарегистрированное уведомление
type Trigger struct {
	ID        string       `json:"id"`
	Content   Content      `json:"content"`
	When      DailyTrigger `json:"when"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Sink получатель сработавших уведомлений
type Sink interface {
	Deliver(ctx context.Context, t Trigger, firedAt time.Time)
}

// SinkFunc адаптер функции к Sink
type SinkFunc func(ctx context.Context, t Trigger, firedAt time.Time)

func (f SinkFunc) Deliver(ctx context.Context, t Trigger, firedAt time.Time) { f(ctx, t, firedAt) }

// LogSink пишет сработавшие уведомления в лог
func LogSink(log *slog.Logger) Sink {
	return SinkFunc(func(_ context.Context, t Trigger, firedAt time.Time) {
		log.Info("reminder fired",
			"trigger_id", t.ID,
			"title", t.Content.Title,
			"body", t.Content.Body,
			"sound", t.Content.Sound,
			"medication_id", t.Content.Data["medicationId"],
			"fired_at", firedAt.Format(time.RFC3339),
		)
	})
}

// LocalScheduler планировщик в памяти процесса, срабатывания раз в минуту
type LocalScheduler struct {
	mu        sync.RWMutex
	granted   bool
	triggers  map[string]Trigger
	sink      Sink
	now       func() time.Time
	lastFired time.Time
}

var _ Scheduler = (*LocalScheduler)(nil)

func NewLocalScheduler(sink Sink, granted bool) *LocalScheduler {
	return &LocalScheduler{
		granted:  granted,
		triggers: make(map[string]Trigger),
		sink:     sink,
		now:      time.Now,
	}
}

// SetPermission имитирует ответ пользователя на запрос разрешения
func (l *LocalScheduler) SetPermission(granted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.granted = granted
}

func (l *LocalScheduler) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.granted, nil
}

func (l *LocalScheduler) Schedule(ctx context.Context, content Content, when DailyTrigger) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if when.Hour < 0 || when.Hour > 23 || when.Minute < 0 || when.Minute > 59 {
		return "", fmt.Errorf("invalid trigger %02d:%02d", when.Hour, when.Minute)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.granted {
		return "", errors.New("notification permission not granted")
	}
	id := uuid.NewString()
	l.triggers[id] = Trigger{ID: id, Content: content, When: when, CreatedAt: l.now().UTC()}
	return id, nil
}

func (l *LocalScheduler) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.triggers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrigger, id)
	}
	delete(l.triggers, id)
	return nil
}

func (l *LocalScheduler) CancelAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.triggers = make(map[string]Trigger)
	return nil
}

// Pending снимок триггеров, отсортирован по времени суток
func (l *LocalScheduler) Pending() []Trigger {
	l.mu.RLock()
	out := make([]Trigger, 0, len(l.triggers))
	for _, t := range l.triggers {
		out = append(out, t)
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].When, out[j].When
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		if a.Minute != b.Minute {
			return a.Minute < b.Minute
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Fire доставляет триггеры, совпавшие с минутой at. Одна минута срабатывает один раз.
func (l *LocalScheduler) Fire(ctx context.Context, at time.Time) int {
	minute := at.Truncate(time.Minute)
	l.mu.Lock()
	if !l.lastFired.IsZero() && !minute.After(l.lastFired) {
		l.mu.Unlock()
		return 0
	}
	l.lastFired = minute
	l.mu.Unlock()

	n := 0
	for _, t := range l.Pending() {
		if !t.When.Matches(at) {
			continue
		}
		if l.sink != nil {
			l.sink.Deliver(ctx, t, at)
		}
		n++
	}
	return n
}

// Run проверяет триггеры в начале каждой минуты до отмены ctx
func (l *LocalScheduler) Run(ctx context.Context) error {
	for {
		now := l.now()
		next := now.Truncate(time.Minute).Add(time.Minute)
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			l.Fire(ctx, l.now())
		}
	}
}
