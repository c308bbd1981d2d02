package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrTemplateNotFound возвращается, когда шаблон доступности не найден
	ErrTemplateNotFound = fmt.Errorf("availability.repository: template %w", domain.ErrNotFound)

	// ErrProfessionalNotFound возвращается при вставке шаблона для несуществующего специалиста
	ErrProfessionalNotFound = fmt.Errorf("availability.repository: professional %w", domain.ErrNotFound)

	ErrBuildQuery = errors.New("availability.repository: failed to build query")
	ErrExecQuery  = errors.New("availability.repository: failed to execute query")
	ErrScanRow    = errors.New("availability.repository: failed to scan row")
)
