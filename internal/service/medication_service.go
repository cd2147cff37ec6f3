package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/domain"
	"medtrack/internal/reminder"
	"medtrack/internal/repository"
)

const defaultForm = "Comprimido"

// Reminders планирование напоминаний для лекарства
type Reminders interface {
	ScheduleForMedication(ctx context.Context, t reminder.Target) ([]string, error)
	CancelForMedication(ctx context.Context, medicationID string) error
}

// MedicationService реестр лекарств пользователя.
// Неизвестный id не считается ошибкой: чтение возвращает nil, изменение ничего не делает.
type MedicationService struct {
	repo      repository.MedicationRepository
	reminders Reminders
	log       *slog.Logger
	now       func() time.Time
}

func NewMedicationService(repo repository.MedicationRepository, reminders Reminders, log *slog.Logger) *MedicationService {
	if log == nil {
		log = slog.Default()
	}
	return &MedicationService{repo: repo, reminders: reminders, log: log.With("component", "medications"), now: time.Now}
}

func (s *MedicationService) List(ctx context.Context) ([]domain.Medication, error) {
	return s.repo.List(ctx)
}

func (s *MedicationService) GetByID(ctx context.Context, id string) (*domain.Medication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

// Add присваивает новый id, сохраняет и планирует напоминания
func (s *MedicationService) Add(ctx context.Context, data domain.Medication) (*domain.Medication, error) {
	m := data
	if strings.TrimSpace(m.Form) == "" {
		m.Form = defaultForm
	}
	if m.StartDate == "" {
		m.StartDate = s.now().UTC().Format(time.RFC3339)
	}
	if err := validateMedication(&m); err != nil {
		return nil, err
	}
	m.ID = uuid.NewString()
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}
	s.reschedule(ctx, &m)
	return &m, nil
}

// Update заменяет лекарство по id и перепланирует напоминания.
// История приёмов сохраняется, если в m она не передана.
func (s *MedicationService) Update(ctx context.Context, m domain.Medication) (*domain.Medication, error) {
	if m.ID == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(m.Form) == "" {
		m.Form = defaultForm
	}
	if err := validateMedication(&m); err != nil {
		return nil, err
	}
	updated, err := s.repo.Modify(ctx, m.ID, func(cur *domain.Medication) error {
		history := cur.TakenHistory
		*cur = m
		if cur.TakenHistory == nil {
			cur.TakenHistory = history
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update medication %s: %w", m.ID, err)
	}
	s.reschedule(ctx, updated)
	return updated, nil
}

// Delete удаляет лекарство и всегда отменяет его напоминания
func (s *MedicationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("delete medication %s: %w", id, err)
	}
	if s.reminders == nil {
		return nil
	}
	if err := s.reminders.CancelForMedication(ctx, id); err != nil {
		return fmt.Errorf("cancel reminders for %s: %w", id, err)
	}
	return nil
}

// UpdateStock списывает consumed, запас не уходит ниже нуля
func (s *MedicationService) UpdateStock(ctx context.Context, id string, consumed int) (*domain.Medication, error) {
	if consumed < 0 {
		return nil, invalidInputf("consumed quantity must be >= 0, got %d", consumed)
	}
	return s.modify(ctx, id, func(m *domain.Medication) {
		m.Stock = max(0, m.Stock-consumed)
	})
}

// Restock пополняет запас после покупки
func (s *MedicationService) Restock(ctx context.Context, id string, qty int) (*domain.Medication, error) {
	if qty <= 0 {
		return nil, invalidInputf("restock quantity must be > 0, got %d", qty)
	}
	return s.modify(ctx, id, func(m *domain.Medication) {
		m.Stock += qty
	})
}

// TakeDose списывает одну единицу и добавляет запись в начало истории
func (s *MedicationService) TakeDose(ctx context.Context, id string) (*domain.Medication, error) {
	now := s.now()
	record := domain.DoseRecord{
		Date: now.UTC().Format(time.RFC3339),
		Time: domain.FormatClock(now.Hour(), now.Minute()),
	}
	return s.modify(ctx, id, func(m *domain.Medication) {
		m.Stock = max(0, m.Stock-1)
		m.TakenHistory = append([]domain.DoseRecord{record}, m.TakenHistory...)
	})
}

// LowStock активные лекарства с запасом на пороге или ниже, в порядке реестра
func (s *MedicationService) LowStock(ctx context.Context) ([]domain.Medication, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Medication, 0)
	for _, m := range list {
		if m.IsLowStock() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MedicationService) modify(ctx context.Context, id string, fn func(m *domain.Medication)) (*domain.Medication, error) {
	m, err := s.repo.Modify(ctx, id, func(m *domain.Medication) error {
		fn(m)
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("modify medication %s: %w", id, err)
	}
	return m, nil
}

// reschedule ошибки напоминаний только логируются
func (s *MedicationService) reschedule(ctx context.Context, m *domain.Medication) {
	if s.reminders == nil {
		return
	}
	var err error
	if m.Active {
		_, err = s.reminders.ScheduleForMedication(ctx, reminder.Target{ID: m.ID, Name: m.Name, Times: m.Times})
	} else {
		err = s.reminders.CancelForMedication(ctx, m.ID)
	}
	if err != nil {
		s.log.Warn("reschedule reminders failed", "medication_id", m.ID, "error", err)
	}
}
