package create_booking

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/slotlock"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type recordingMetrics struct {
	mu       sync.Mutex
	created  int
	rejected []string
}

func (m *recordingMetrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *recordingMetrics) BookingRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

type fixture struct {
	uc       *UseCase
	db       *sql.DB
	seed     storagetest.Seed
	catalog  *catalogRepo.Repository
	clients  *clientRepo.Repository
	bookings *bookingRepo.Repository
	engine   *slots.Engine
	tx       *txmanager.TransactionManager
	metrics  *recordingMetrics
}

// newFixture: по понедельникам у специалиста получасовые окна с 09:00 до 12:00, услуга 30 минут
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storagetest.NewSQLite(t)
	seed := storagetest.SeedCatalog(t, db, 30)
	for from := 9 * 60; from < 12*60; from += 30 {
		start, err := types.NewTimeStringFromMinutes(from)
		require.NoError(t, err)
		end, err := start.AddMinutes(30)
		require.NoError(t, err)
		storagetest.SeedTemplate(t, db, seed.ProfessionalID, 0, start.String(), end.String())
	}

	wrapped := dbmetrics.Wrap(db, nil)
	bookings := bookingRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite)
	catalog := catalogRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite)
	clients := clientRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite)
	templates := availabilityRepo.NewRepository(wrapped, sqlbuilder.DialectSQLite)
	m := &recordingMetrics{}
	engine := slots.NewEngine(templates, bookings)
	tx := txmanager.NewTransactionManager(wrapped)

	uc := NewUseCase(
		bookings,
		catalog,
		clients,
		engine,
		slotlock.NewLocal(),
		tx,
		NewBcryptTokenIssuer(bcrypt.MinCost),
		m,
		logger.NewNop(),
	)

	return &fixture{
		uc:       uc,
		db:       db,
		seed:     seed,
		catalog:  catalog,
		clients:  clients,
		bookings: bookings,
		engine:   engine,
		tx:       tx,
		metrics:  m,
	}
}

func (f *fixture) walkIn(start string, phone string) *Request {
	return &Request{
		Principal:             domain.Principal{Role: domain.RoleAdministrator, ID: 1},
		Client:                &ClientIdentity{Name: "Maria", Phone: phone},
		ProfessionalServiceID: f.seed.ProfessionalServiceID,
		Date:                  storagetest.Monday(),
		StartTime:             types.TimeString(start),
	}
}

func TestUseCase_Execute_NewClient(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.walkIn("10:00", "555-1234"))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, f.seed.ProfessionalID, resp.ProfessionalID)
	assert.Equal(t, f.seed.ServiceID, resp.ServiceID)
	assert.True(t, resp.ClientCreated)
	require.NotNil(t, resp.ActivationToken)

	client, err := f.clients.GetByID(context.Background(), resp.ClientID)
	require.NoError(t, err)
	assert.Equal(t, "5551234", client.Phone)
	assert.Equal(t, domain.ClientPendingActivation, client.Status)
	require.NotNil(t, client.ActivationTokenHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*client.ActivationTokenHash), []byte(*resp.ActivationToken)))

	assert.Equal(t, 1, f.metrics.created)
}

func TestUseCase_Execute_ReusesClientByPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, f.walkIn("09:00", "5551234"))
	require.NoError(t, err)

	second, err := f.uc.Execute(ctx, f.walkIn("11:00", "555 12 34"))
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID)
	assert.False(t, second.ClientCreated)
	assert.Nil(t, second.ActivationToken)
}

func TestUseCase_Execute_AuthenticatedClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.clients.Create(ctx, &domain.Client{
		Name:   "Ivan",
		Phone:  "5559876",
		Status: domain.ClientActive,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{
		Principal:      domain.Principal{Role: domain.RoleClient, ID: client.ID},
		ProfessionalID: f.seed.ProfessionalID,
		ServiceID:      f.seed.ServiceID,
		Date:           storagetest.Monday(),
		StartTime:      "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, client.ID, resp.ClientID)
	assert.Equal(t, f.seed.ProfessionalServiceID, resp.ProfessionalServiceID)
	assert.False(t, resp.ClientCreated)

	_, err = f.uc.Execute(ctx, &Request{
		Principal:             domain.Principal{Role: domain.RoleClient, ID: client.ID + 100},
		ProfessionalServiceID: f.seed.ProfessionalServiceID,
		Date:                  storagetest.Monday(),
		StartTime:             "10:00",
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, f.walkIn("10:00", "5551234"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.walkIn("10:00", "5554321"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Equal(t, []string{"slot_unavailable"}, f.metrics.rejected)

	// Второй клиент не создан, транзакция откатилась
	_, err = f.clients.GetByPhone(ctx, "5554321")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// serializationFailingBookings отвечает на вставку так, как Postgres отвечает
// проигравшей SERIALIZABLE транзакции
type serializationFailingBookings struct{}

func (serializationFailingBookings) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
}

func TestUseCase_Execute_SerializationFailureIsSlotUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	uc := NewUseCase(
		serializationFailingBookings{},
		f.catalog,
		f.clients,
		f.engine,
		slotlock.NewLocal(),
		f.tx,
		NewBcryptTokenIssuer(bcrypt.MinCost),
		f.metrics,
		logger.NewNop(),
	)

	_, err := uc.Execute(ctx, f.walkIn("10:00", "5554321"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"slot_unavailable"}, f.metrics.rejected)

	_, err = f.clients.GetByPhone(ctx, "5554321")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_Execute_StartNotOnGrid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, start := range []string{"10:15", "08:30", "12:00"} {
		_, err := f.uc.Execute(ctx, f.walkIn(start, "5551234"))
		assert.ErrorIs(t, err, domain.ErrSlotUnavailable, start)
	}

	// Вторник: шаблонов нет
	req := f.walkIn("10:00", "5551234")
	req.Date = storagetest.Monday().AddDate(0, 0, 1)
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			phone := []string{"5550101", "5550202"}[i]
			_, errs[i] = f.uc.Execute(ctx, f.walkIn("10:00", phone))
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrSlotUnavailable):
			unavailable++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, unavailable)

	day := storagetest.Monday()
	active, err := f.bookings.List(ctx, domain.BookingFilter{
		ProfessionalID: &f.seed.ProfessionalID,
		Date:           &day,
		Statuses:       domain.OccupyingStatuses,
	})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestUseCase_Execute_CancelledSlotCanBeRebooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, f.walkIn("10:00", "5551234"))
	require.NoError(t, err)

	ok, err := f.bookings.TransitionStatus(ctx, first.ID, domain.StatusPending, domain.StatusCancelled, first.CreatedAt)
	require.NoError(t, err)
	require.True(t, ok)

	second, err := f.uc.Execute(ctx, f.walkIn("10:00", "5554321"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUseCase_Execute_EndTimeFixedAtCreation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, f.walkIn("09:00", "5551234"))
	require.NoError(t, err)
	require.Equal(t, types.TimeString("09:30"), resp.EndTime)

	require.NoError(t, f.catalog.UpdateServiceDuration(ctx, f.seed.ServiceID, 60))

	stored, err := f.bookings.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:30"), stored.EndTime)

	// Новые бронирования считаются по новой длительности
	next, err := f.uc.Execute(ctx, f.walkIn("10:00", "5554321"))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), next.EndTime)
}

func TestUseCase_Execute_ProfessionalServiceNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.walkIn("10:00", "5551234")
	req.ProfessionalServiceID = f.seed.ProfessionalServiceID + 100
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrProfessionalServiceNotFound)

	req = f.walkIn("10:00", "5551234")
	req.ProfessionalServiceID = 0
	req.ProfessionalID = f.seed.ProfessionalID
	req.ServiceID = f.seed.ServiceID + 100
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"not_found", "not_found"}, f.metrics.rejected)
}

func TestUseCase_Execute_ProfessionalBooksOnlyOwnSchedule(t *testing.T) {
	f := newFixture(t)

	req := f.walkIn("10:00", "5551234")
	req.Principal = domain.Principal{Role: domain.RoleProfessional, ID: f.seed.ProfessionalID + 1}
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	req.Principal.ID = f.seed.ProfessionalID
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestValidateRequest(t *testing.T) {
	base := func() *Request {
		return &Request{
			Principal:             domain.Principal{Role: domain.RoleAdministrator, ID: 1},
			Client:                &ClientIdentity{Name: "Maria", Phone: "5551234", Email: ptr.Ptr("m@example.com")},
			ProfessionalServiceID: 1,
			Date:                  storagetest.Monday(),
			StartTime:             "10:00",
		}
	}

	require.NoError(t, validateRequest(base()))

	cases := map[string]func(r *Request){
		"no service":        func(r *Request) { r.ProfessionalServiceID = 0 },
		"only professional": func(r *Request) { r.ProfessionalServiceID, r.ProfessionalID = 0, 1 },
		"no date":           func(r *Request) { r.Date = time.Time{} },
		"no start":          func(r *Request) { r.StartTime = "" },
		"bad start":         func(r *Request) { r.StartTime = "25:00" },
		"no client":         func(r *Request) { r.Client = nil },
		"blank name":        func(r *Request) { r.Client.Name = "   " },
		"short phone":       func(r *Request) { r.Client.Phone = "12" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := base()
			mutate(r)
			assert.ErrorIs(t, validateRequest(r), domain.ErrInvalidInput)
		})
	}
}
