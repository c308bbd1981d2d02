package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfessionalServiceID < 0 || req.ProfessionalID < 0 || req.ServiceID < 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	if req.ProfessionalServiceID == 0 && (req.ProfessionalID == 0 || req.ServiceID == 0) {
		return fmt.Errorf("%w: professionalServiceId or professionalId+serviceId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return validateClient(req)
}

// validateClient проверяет, что клиента можно определить.
// Клиент записывается сам; специалист и администратор записывают клиента по телефону.
func validateClient(req *Request) error {
	if req.Principal.IsClient() {
		if req.Principal.ID <= 0 {
			return fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.Client == nil {
		return fmt.Errorf("%w: client name and phone are required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Client.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: client name is required (max %d chars)", ErrInvalidInput, domain.MaxNameLength)
	}

	phone := domain.NormalizePhone(req.Client.Phone)
	if len(phone) < domain.MinPhoneDigits || len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: invalid client phone", ErrInvalidInput)
	}

	return nil
}
