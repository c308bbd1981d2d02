package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

type fixture struct {
	svc       *Service
	catalog   *catalogRepo.Repository
	templates *availability.Repository
	bookings  *booking.Repository
	clients   *client.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storagetest.NewSQLite(t)
	wrapped := dbmetrics.Wrap(db, nil)

	f := &fixture{
		catalog:   catalogRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite),
		templates: availability.NewRepository(wrapped, sqlbuilder.DialectSQLite),
		bookings:  booking.NewRepository(wrapped, sqlbuilder.DialectSQLite),
		clients:   client.NewRepository(wrapped, sqlbuilder.DialectSQLite),
	}
	f.svc = NewService(f.catalog, f.templates, f.bookings, f.clients, txmanager.NewTransactionManager(wrapped), logger.NewNop())
	return f
}

func (f *fixture) setup(t *testing.T) (int64, int64, int64) {
	t.Helper()
	ctx := context.Background()

	p, err := f.svc.CreateProfessional(ctx, &models.CreateProfessionalRequest{Name: " Ana ", Phone: "+1 555 0001"})
	require.NoError(t, err)
	s, err := f.svc.CreateService(ctx, &models.CreateServiceRequest{
		Name: "Haircut", Description: ptr.Ptr("Classic"), Price: 40, DurationMinutes: 30,
	})
	require.NoError(t, err)
	link, err := f.svc.LinkService(ctx, p.ID, s.ID)
	require.NoError(t, err)

	return p.ID, s.ID, link.ID
}

func TestService_CreateAndLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profID, svcID, linkID := f.setup(t)

	p, err := f.catalog.GetProfessional(ctx, profID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "+15550001", p.Phone)

	link, err := f.catalog.GetLinkByPair(ctx, profID, svcID)
	require.NoError(t, err)
	assert.Equal(t, linkID, link.ID)

	_, err = f.svc.LinkService(ctx, profID, svcID)
	assert.ErrorIs(t, err, ErrAlreadyLinked)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.LinkService(ctx, profID+10, svcID)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	_, err = f.svc.LinkService(ctx, profID, svcID+10)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProfessional(ctx, &models.CreateProfessionalRequest{Name: "", Phone: "5550001"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateProfessional(ctx, &models.CreateProfessionalRequest{Name: "Ana", Phone: "12"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateService(ctx, &models.CreateServiceRequest{Name: "Haircut", DurationMinutes: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateService(ctx, &models.CreateServiceRequest{Name: "Haircut", Price: -1, DurationMinutes: 30})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_SetServiceDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, svcID, _ := f.setup(t)

	require.NoError(t, f.svc.SetServiceDuration(ctx, svcID, 45))

	s, err := f.catalog.GetService(ctx, svcID)
	require.NoError(t, err)
	assert.Equal(t, 45, s.DurationMinutes)

	assert.ErrorIs(t, f.svc.SetServiceDuration(ctx, svcID, 1000), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.SetServiceDuration(ctx, svcID+10, 45), ErrServiceNotFound)
}

func TestService_DeleteProfessional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profID, svcID, linkID := f.setup(t)

	_, err := f.templates.Create(ctx, &domain.AvailabilityTemplate{
		ProfessionalID: profID, Weekday: 0, StartTime: "09:00", EndTime: "12:00", Status: domain.TemplateActive,
	})
	require.NoError(t, err)

	c, err := f.clients.Create(ctx, &domain.Client{Name: "Maria", Phone: "5551234", Status: domain.ClientActive})
	require.NoError(t, err)
	b, err := f.bookings.Create(ctx, &domain.Booking{
		ClientID: c.ID, ProfessionalServiceID: linkID, ProfessionalID: profID, ServiceID: svcID,
		BookingDate: storagetest.Monday(), StartTime: "09:00", EndTime: "09:30", Status: domain.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProfessional(ctx, profID))

	_, err = f.catalog.GetProfessional(ctx, profID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.bookings.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	templates, err := f.templates.ListByProfessional(ctx, profID)
	require.NoError(t, err)
	assert.Empty(t, templates)

	// Услуга и клиент остаются
	_, err = f.catalog.GetService(ctx, svcID)
	assert.NoError(t, err)
	_, err = f.clients.GetByID(ctx, c.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteProfessional(ctx, profID), ErrProfessionalNotFound)
}

func TestService_DeleteClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profID, svcID, linkID := f.setup(t)

	c, err := f.clients.Create(ctx, &domain.Client{Name: "Maria", Phone: "5551234", Status: domain.ClientActive})
	require.NoError(t, err)
	b, err := f.bookings.Create(ctx, &domain.Booking{
		ClientID: c.ID, ProfessionalServiceID: linkID, ProfessionalID: profID, ServiceID: svcID,
		BookingDate: storagetest.Monday(), StartTime: "09:00", EndTime: "09:30", Status: domain.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteClient(ctx, c.ID))

	_, err = f.bookings.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteClient(ctx, c.ID), ErrClientNotFound)
}

func TestService_GetService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, svcID, _ := f.setup(t)

	resp, err := f.svc.GetService(ctx, svcID)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", resp.Name)
	assert.Equal(t, 30, resp.DurationMinutes)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "Classic", *resp.Description)

	_, err = f.svc.GetService(ctx, svcID+10)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
