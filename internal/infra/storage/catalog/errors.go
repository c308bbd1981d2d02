package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	ErrProfessionalNotFound = fmt.Errorf("catalog.repository: professional %w", domain.ErrNotFound)
	ErrServiceNotFound      = fmt.Errorf("catalog.repository: service %w", domain.ErrNotFound)

	// ErrLinkNotFound специалист не оказывает услугу
	ErrLinkNotFound = fmt.Errorf("catalog.repository: professional service %w", domain.ErrNotFound)

	// ErrLinkExists связь специалист-услуга уже существует
	ErrLinkExists = fmt.Errorf("catalog.repository: professional service already exists: %w", domain.ErrConflict)

	ErrBuildQuery = errors.New("catalog.repository: failed to build query")
	ErrExecQuery  = errors.New("catalog.repository: failed to execute query")
	ErrScanRow    = errors.New("catalog.repository: failed to scan row")
)
