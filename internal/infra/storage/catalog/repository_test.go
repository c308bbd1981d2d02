package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
)

func TestRepository_ProfessionalServiceLinks(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewSQLite(t), sqlbuilder.DialectSQLite)

	p, err := repo.CreateProfessional(ctx, &domain.Professional{Name: "Ana", Phone: "5550001"})
	require.NoError(t, err)
	s, err := repo.CreateService(ctx, &domain.Service{Name: "Haircut", Price: 35.5, DurationMinutes: 30})
	require.NoError(t, err)

	link, err := repo.CreateLink(ctx, p.ID, s.ID)
	require.NoError(t, err)

	_, err = repo.CreateLink(ctx, p.ID, s.ID)
	assert.ErrorIs(t, err, ErrLinkExists)

	byPair, err := repo.GetLinkByPair(ctx, p.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, link.ID, byPair.ID)

	byID, err := repo.GetLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byID.ProfessionalID)

	_, err = repo.GetLinkByPair(ctx, p.ID, s.ID+1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_UpdateServiceDuration(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewSQLite(t), sqlbuilder.DialectSQLite)

	s, err := repo.CreateService(ctx, &domain.Service{Name: "Color", Price: 80, DurationMinutes: 60})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateServiceDuration(ctx, s.ID, 90))

	got, err := repo.GetService(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.DurationMinutes)
	assert.InDelta(t, 80.0, got.Price, 0.001)

	assert.ErrorIs(t, repo.UpdateServiceDuration(ctx, 999, 30), ErrServiceNotFound)
}

func TestRepository_DeleteProfessional(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewSQLite(t), sqlbuilder.DialectSQLite)

	p, err := repo.CreateProfessional(ctx, &domain.Professional{Name: "Ana", Phone: "5550001"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProfessional(ctx, p.ID))
	_, err = repo.GetProfessional(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.ErrorIs(t, repo.DeleteProfessional(ctx, p.ID), domain.ErrNotFound)
}
