package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"medtrack/internal/domain"
	"medtrack/internal/repository"
)

const (
	reminderTitle = "Hora do Medicamento"
	reminderBody  = "Está na hora de tomar %s"
)

// alert один из трёх триггеров на каждое время приёма
type alert struct {
	offset int
	sound  bool
	suffix string
}

var alerts = []alert{
	{offset: 10, sound: false, suffix: "(Em 10 min)"},
	{offset: 5, sound: false, suffix: "(Em 5 min)"},
	{offset: 0, sound: true},
}

// Target что планировать: лекарство и его времена приёма
type Target struct {
	ID    string
	Name  string
	Times []string
}

// Service связывает планировщик и сохранённое соответствие лекарство -> триггеры
type Service struct {
	scheduler Scheduler
	mapping   repository.NotificationMappingRepository
	log       *slog.Logger
	mu        sync.Mutex
}

func NewService(scheduler Scheduler, mapping repository.NotificationMappingRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{scheduler: scheduler, mapping: mapping, log: log.With("component", "reminder")}
}

// ScheduleForMedication заменяет все триггеры лекарства новыми.
// Повторный вызов с теми же временами не создаёт дубликатов.
func (s *Service) ScheduleForMedication(ctx context.Context, t Target) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cancelLocked(ctx, t.ID); err != nil {
		return nil, err
	}

	granted, err := s.scheduler.RequestPermission(ctx)
	if err != nil {
		s.log.Warn("notification permission request failed", "medication_id", t.ID, "error", err)
		return nil, nil
	}
	if !granted {
		s.log.Info("notification permission denied, reminders disabled", "medication_id", t.ID)
		return nil, nil
	}

	ids := make([]string, 0, len(t.Times)*len(alerts))
	for _, clock := range t.Times {
		hour, minute, err := domain.ParseClock(clock)
		if err != nil {
			s.log.Warn("skip invalid dose time", "medication_id", t.ID, "time", clock, "error", err)
			continue
		}
		at := DailyTrigger{Hour: hour, Minute: minute}
		for _, a := range alerts {
			content := Content{
				Title: reminderTitle,
				Body:  fmt.Sprintf(reminderBody, t.Name),
				Sound: a.sound,
				Data:  map[string]string{"medicationId": t.ID, "doseTime": clock},
			}
			if a.suffix != "" {
				content.Title = reminderTitle + " " + a.suffix
			}
			id, err := s.scheduler.Schedule(ctx, content, subtractMinutes(at, a.offset))
			if err != nil {
				s.log.Warn("schedule reminder failed", "medication_id", t.ID, "time", clock, "offset", a.offset, "error", err)
				continue
			}
			ids = append(ids, id)
		}
	}

	if err := s.mapping.Set(ctx, t.ID, ids); err != nil {
		return ids, fmt.Errorf("store reminder ids for %s: %w", t.ID, err)
	}
	s.log.Debug("reminders scheduled", "medication_id", t.ID, "count", len(ids))
	return ids, nil
}

// CancelForMedication отменяет все триггеры лекарства и удаляет запись соответствия
func (s *Service) CancelForMedication(ctx context.Context, medicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ctx, medicationID)
}

func (s *Service) cancelLocked(ctx context.Context, medicationID string) error {
	ids, err := s.mapping.IDs(ctx, medicationID)
	if err != nil {
		return fmt.Errorf("load reminder ids for %s: %w", medicationID, err)
	}
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		// ids from a previous process are unknown to a fresh in-memory scheduler
		if err := s.scheduler.Cancel(ctx, id); err != nil && !errors.Is(err, ErrUnknownTrigger) {
			s.log.Warn("cancel reminder failed", "medication_id", medicationID, "trigger_id", id, "error", err)
		}
	}
	if err := s.mapping.Set(ctx, medicationID, nil); err != nil {
		return fmt.Errorf("clear reminder ids for %s: %w", medicationID, err)
	}
	return nil
}

// CancelAll отменяет все триггеры планировщика и очищает соответствие
func (s *Service) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scheduler.CancelAll(ctx); err != nil {
		s.log.Warn("cancel all reminders failed", "error", err)
	}
	if err := s.mapping.Clear(ctx); err != nil {
		return fmt.Errorf("clear reminder mapping: %w", err)
	}
	return nil
}

// TriggerIDs сохранённые id триггеров лекарства
func (s *Service) TriggerIDs(ctx context.Context, medicationID string) ([]string, error) {
	return s.mapping.IDs(ctx, medicationID)
}
