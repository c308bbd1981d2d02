// Package slots вычисляет свободные времена начала для специалиста на дату.
//
// Вычисление идет в два шага: каждый активный шаблон дня недели дает одного
// кандидата, свое время начала; затем из кандидатов убираются времена начала,
// уже занятые бронированиями pending/completed. Конфликтом считается только
// точное совпадение времени начала. Шаг сетки задается тем, как нарезаны
// шаблоны, а не длительностью услуги.
//
// Длительность услуги используется ровно в одном месте: кандидат, у которого
// начало плюс длительность уходит за 24:00, не предлагается, потому что
// время окончания не помещается в HH:MM одних суток. На нарезку это не влияет.
package slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Engine движок доступных слотов
type Engine struct {
	templates TemplateRepository
	bookings  BookingRepository
}

func NewEngine(templates TemplateRepository, bookings BookingRepository) *Engine {
	return &Engine{templates: templates, bookings: bookings}
}

// AvailableSlots возвращает отсортированные уникальные времена начала, свободные
// для услуги длительностью durationMinutes у специалиста на дату
func (e *Engine) AvailableSlots(ctx context.Context, professionalID int64, durationMinutes int, date time.Time) ([]types.TimeString, error) {
	return e.compute(ctx, professionalID, durationMinutes, date, false)
}

// LockedAvailableSlots то же, что AvailableSlots, но внутри транзакции
// блокирует прочитанные бронирования (SELECT ... FOR UPDATE в postgres).
// Используется при создании бронирования.
func (e *Engine) LockedAvailableSlots(ctx context.Context, professionalID int64, durationMinutes int, date time.Time) ([]types.TimeString, error) {
	return e.compute(ctx, professionalID, durationMinutes, date, true)
}

func (e *Engine) compute(ctx context.Context, professionalID int64, durationMinutes int, date time.Time, lock bool) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	day := types.DateOnly(date)

	templates, err := e.templates.ListActive(ctx, professionalID, types.WeekdayOf(day))
	if err != nil {
		return nil, fmt.Errorf("%w: list templates: %w", ErrInternal, err)
	}

	candidates := DeriveCandidates(templates, durationMinutes)
	if len(candidates) == 0 {
		return []types.TimeString{}, nil
	}

	bookings, err := e.bookings.List(ctx, domain.BookingFilter{
		ProfessionalID: &professionalID,
		Date:           &day,
		Statuses:       domain.OccupyingStatuses,
		ForUpdate:      lock,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", ErrInternal, err)
	}

	return ResolveConflicts(candidates, bookings), nil
}

// DeriveCandidates строит кандидатов из шаблонов: одно время начала на шаблон.
// Неактивные и некорректные шаблоны пропускаются, пересекающиеся и
// повторяющиеся шаблоны дают общий отсортированный список без повторов.
// Длительность услуги окно шаблона не ограничивает; отбрасывается только
// кандидат, окончание которого ушло бы за полночь.
func DeriveCandidates(templates []*domain.AvailabilityTemplate, durationMinutes int) []types.TimeString {
	if durationMinutes <= 0 {
		return []types.TimeString{}
	}

	seen := make(map[int]struct{})
	for _, t := range templates {
		if t == nil || !t.IsActive() || !t.HasValidInterval() {
			continue
		}

		start := t.StartTime.Minutes()
		if start+durationMinutes > types.MinutesPerDay {
			continue
		}
		seen[start] = struct{}{}
	}

	minutes := make([]int, 0, len(seen))
	for m := range seen {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	out := make([]types.TimeString, 0, len(minutes))
	for _, m := range minutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			continue
		}
		out = append(out, ts)
	}
	return out
}

// ResolveConflicts убирает кандидатов, время начала которых совпадает с
// бронированием, занимающим слот. Порядок кандидатов сохраняется.
func ResolveConflicts(candidates []types.TimeString, bookings []*domain.Booking) []types.TimeString {
	taken := make(map[int]struct{}, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.OccupiesSlot() {
			continue
		}
		taken[b.StartTime.Minutes()] = struct{}{}
	}

	out := make([]types.TimeString, 0, len(candidates))
	for _, c := range candidates {
		if _, busy := taken[c.Minutes()]; busy {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Contains проверяет, входит ли время начала в список слотов
func Contains(slots []types.TimeString, start types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(start) {
			return true
		}
	}
	return false
}
