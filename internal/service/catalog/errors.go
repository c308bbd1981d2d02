package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	ErrProfessionalNotFound = fmt.Errorf("catalog: professional %w", domain.ErrNotFound)
	ErrServiceNotFound      = fmt.Errorf("catalog: service %w", domain.ErrNotFound)
	ErrClientNotFound       = fmt.Errorf("catalog: client %w", domain.ErrNotFound)
	ErrAlreadyLinked        = fmt.Errorf("catalog: professional already offers the service: %w", domain.ErrConflict)
	ErrInvalidInput         = fmt.Errorf("catalog: %w", domain.ErrInvalidInput)
	ErrInternal             = errors.New("catalog: internal error")
)
