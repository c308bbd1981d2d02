package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func starts(slots []domain.AvailableSlot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestUseCase_Execute(t *testing.T) {
	db := storagetest.NewSQLite(t)
	seed := storagetest.SeedCatalog(t, db, 30)
	storagetest.SeedTemplate(t, db, seed.ProfessionalID, 0, "11:00", "12:00")
	storagetest.SeedTemplate(t, db, seed.ProfessionalID, 0, "09:00", "10:00")
	storagetest.SeedTemplate(t, db, seed.ProfessionalID, 0, "10:00", "11:00")

	wrapped := dbmetrics.Wrap(db, nil)
	bookings := bookingRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite)
	templates := availabilityRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite)
	clients := clientRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite)

	uc := NewUseCase(
		catalogRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite),
		slots.NewEngine(templates, bookings),
		txmanager.NewTransactionManager(wrapped),
		logger.NewNop(),
	)

	ctx := context.Background()
	monday := storagetest.Monday()

	client, err := clients.Create(ctx, &domain.Client{Name: "Maria", Phone: "5551234", Status: domain.ClientActive})
	require.NoError(t, err)

	_, err = bookings.Create(ctx, &domain.Booking{
		ClientID:              client.ID,
		ProfessionalServiceID: seed.ProfessionalServiceID,
		ProfessionalID:        seed.ProfessionalID,
		ServiceID:             seed.ServiceID,
		BookingDate:           monday,
		StartTime:             "10:00",
		EndTime:               "10:30",
		Status:                domain.StatusPending,
	})
	require.NoError(t, err)

	t.Run("booked start is excluded", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{ProfessionalID: seed.ProfessionalID, ServiceID: seed.ServiceID, Date: monday})
		require.NoError(t, err)

		assert.Equal(t, []types.TimeString{"09:00", "11:00"}, starts(resp.Slots))
		assert.Equal(t, 30, resp.DurationMinutes)
		assert.Equal(t, types.TimeString("11:30"), resp.Slots[len(resp.Slots)-1].EndTime)
	})

	t.Run("date with time of day", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{
			ProfessionalID: seed.ProfessionalID,
			ServiceID:      seed.ServiceID,
			Date:           monday.Add(15 * time.Hour),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 2)
		assert.Equal(t, monday, resp.Date)
	})

	t.Run("no templates for weekday", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{
			ProfessionalID: seed.ProfessionalID,
			ServiceID:      seed.ServiceID,
			Date:           monday.AddDate(0, 0, 2),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("service not offered", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{ProfessionalID: seed.ProfessionalID, ServiceID: seed.ServiceID + 1, Date: monday})
		assert.ErrorIs(t, err, ErrProfessionalServiceNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{ServiceID: seed.ServiceID, Date: monday})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.Execute(ctx, &Request{ProfessionalID: seed.ProfessionalID, ServiceID: seed.ServiceID})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
