package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeTemplates struct {
	templates []*domain.AvailabilityTemplate
	weekday   int
	err       error
}

func (f *fakeTemplates) ListActive(_ context.Context, _ int64, weekday int) ([]*domain.AvailabilityTemplate, error) {
	f.weekday = weekday
	return f.templates, f.err
}

type fakeBookings struct {
	bookings []*domain.Booking
	filter   domain.BookingFilter
	calls    int
	err      error
}

func (f *fakeBookings) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.calls++
	f.filter = filter
	return f.bookings, f.err
}

func tpl(start, end types.TimeString) *domain.AvailabilityTemplate {
	return &domain.AvailabilityTemplate{Weekday: 0, StartTime: start, EndTime: end, Status: domain.TemplateActive}
}

func booked(start types.TimeString, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{StartTime: start, Status: status}
}

func ts(values ...string) []types.TimeString {
	out := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		out = append(out, types.TimeString(v))
	}
	return out
}

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func TestDeriveCandidates(t *testing.T) {
	tests := []struct {
		name      string
		templates []*domain.AvailabilityTemplate
		duration  int
		want      []types.TimeString
	}{
		{
			name:      "one slot per template",
			templates: []*domain.AvailabilityTemplate{tpl("09:00", "10:00")},
			duration:  30,
			want:      ts("09:00"),
		},
		{
			name:      "long window is not subdivided",
			templates: []*domain.AvailabilityTemplate{tpl("09:00", "12:00")},
			duration:  30,
			want:      ts("09:00"),
		},
		{
			name:      "duration longer than window",
			templates: []*domain.AvailabilityTemplate{tpl("09:00", "09:20")},
			duration:  60,
			want:      ts("09:00"),
		},
		{
			name: "unsorted templates are ordered",
			templates: []*domain.AvailabilityTemplate{
				tpl("11:00", "12:00"), tpl("09:00", "10:00"), tpl("10:00", "11:00"),
			},
			duration: 60,
			want:     ts("09:00", "10:00", "11:00"),
		},
		{
			name: "overlapping and duplicate templates are merged",
			templates: []*domain.AvailabilityTemplate{
				tpl("10:00", "12:00"), tpl("09:00", "11:00"), tpl("10:00", "11:00"),
			},
			duration: 60,
			want:     ts("09:00", "10:00"),
		},
		{
			name: "inactive and invalid templates are skipped",
			templates: []*domain.AvailabilityTemplate{
				{StartTime: "09:00", EndTime: "10:00", Status: domain.TemplateInactive},
				{StartTime: "12:00", EndTime: "11:00", Status: domain.TemplateActive},
				nil,
				tpl("14:00", "15:00"),
			},
			duration: 30,
			want:     ts("14:00"),
		},
		{
			name:      "end past midnight is dropped",
			templates: []*domain.AvailabilityTemplate{tpl("22:00", "23:00"), tpl("23:30", "24:00")},
			duration:  60,
			want:      ts("22:00"),
		},
		{
			name:      "non-positive duration",
			templates: []*domain.AvailabilityTemplate{tpl("09:00", "12:00")},
			duration:  0,
			want:      ts(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCandidates(tt.templates, tt.duration))
		})
	}
}

func TestResolveConflicts(t *testing.T) {
	candidates := ts("09:00", "09:30", "10:00", "10:30")

	got := ResolveConflicts(candidates, []*domain.Booking{
		booked("09:30", domain.StatusPending),
		booked("10:00", domain.StatusCancelled),
		booked("10:30", domain.StatusCompleted),
	})
	assert.Equal(t, ts("09:00", "10:00"), got)

	// Пересечение без совпадения начала конфликтом не считается
	got = ResolveConflicts(candidates, []*domain.Booking{booked("09:15", domain.StatusPending)})
	assert.Equal(t, candidates, got)

	assert.Empty(t, ResolveConflicts(nil, nil))
}

func TestEngine_AvailableSlots(t *testing.T) {
	templates := &fakeTemplates{templates: []*domain.AvailabilityTemplate{
		tpl("09:00", "10:00"), tpl("10:00", "11:00"), tpl("11:00", "12:00"),
	}}
	bookings := &fakeBookings{bookings: []*domain.Booking{booked("10:00", domain.StatusPending)}}
	engine := NewEngine(templates, bookings)

	got, err := engine.AvailableSlots(context.Background(), 7, 30, monday.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, ts("09:00", "11:00"), got)
	assert.Equal(t, 0, templates.weekday)
	require.NotNil(t, bookings.filter.ProfessionalID)
	assert.Equal(t, int64(7), *bookings.filter.ProfessionalID)
	assert.Equal(t, monday, *bookings.filter.Date)
	assert.Equal(t, domain.OccupyingStatuses, bookings.filter.Statuses)
	assert.False(t, bookings.filter.ForUpdate)

	_, err = engine.LockedAvailableSlots(context.Background(), 7, 30, monday)
	require.NoError(t, err)
	assert.True(t, bookings.filter.ForUpdate)
}

func TestEngine_AvailableSlots_NoTemplates(t *testing.T) {
	bookings := &fakeBookings{}
	engine := NewEngine(&fakeTemplates{}, bookings)

	got, err := engine.AvailableSlots(context.Background(), 1, 30, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, bookings.calls)
}

func TestEngine_AvailableSlots_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewEngine(&fakeTemplates{}, &fakeBookings{}).AvailableSlots(ctx, 1, 0, monday)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewEngine(&fakeTemplates{err: errors.New("boom")}, &fakeBookings{}).AvailableSlots(ctx, 1, 30, monday)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = NewEngine(
		&fakeTemplates{templates: []*domain.AvailabilityTemplate{tpl("09:00", "10:00")}},
		&fakeBookings{err: errors.New("boom")},
	).AvailableSlots(ctx, 1, 30, monday)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestContains(t *testing.T) {
	slots := ts("09:00", "10:00")
	assert.True(t, Contains(slots, "10:00"))
	assert.False(t, Contains(slots, "09:30"))
}
