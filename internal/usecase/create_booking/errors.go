package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrProfessionalServiceNotFound специалист не оказывает услугу или связь не существует
	ErrProfessionalServiceNotFound = fmt.Errorf("create_booking: professional service %w", domain.ErrNotFound)

	// ErrClientNotFound аутентифицированный клиент не найден
	ErrClientNotFound = fmt.Errorf("create_booking: client %w", domain.ErrNotFound)

	// ErrSlotNotAvailable время начала не входит в свободные слоты или занято конкурентом
	ErrSlotNotAvailable = fmt.Errorf("create_booking: %w", domain.ErrSlotUnavailable)

	// ErrServiceDurationUnresolvable длительность услуги неизвестна или не укладывается в сутки
	ErrServiceDurationUnresolvable = fmt.Errorf("create_booking: service duration is not resolvable: %w", domain.ErrInvalidInput)

	// ErrForbidden роль не может создавать бронирование в таком виде
	ErrForbidden = fmt.Errorf("create_booking: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
