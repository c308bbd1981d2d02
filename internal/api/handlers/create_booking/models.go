package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model.
// Данные клиента не нужны, если запрос делает аутентифицированный клиент.
type CreateBookingRequest struct {
	ClientName            string  `json:"clientName"`
	ClientPhone           string  `json:"clientPhone"`
	ClientEmail           *string `json:"clientEmail,omitempty"`
	ProfessionalServiceID int64   `json:"professionalServiceId,omitempty"`
	ProfessionalID        int64   `json:"professionalId"`
	ServiceID             int64   `json:"serviceId"`
	Date                  string  `json:"date"`      // "2025-01-06"
	StartTime             string  `json:"startTime"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                    int64   `json:"id"`
	ClientID              int64   `json:"clientId"`
	ProfessionalServiceID int64   `json:"professionalServiceId"`
	ProfessionalID        int64   `json:"professionalId"`
	ServiceID             int64   `json:"serviceId"`
	Date                  string  `json:"date"`
	StartTime             string  `json:"startTime"`
	EndTime               string  `json:"endTime"`
	Status                string  `json:"status"`
	ClientCreated         bool    `json:"clientCreated"`
	ActivationToken       *string `json:"activationToken,omitempty"`
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal domain.Principal) (*createBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	req := &createBooking.Request{
		Principal:             principal,
		ProfessionalServiceID: r.ProfessionalServiceID,
		ProfessionalID:        r.ProfessionalID,
		ServiceID:             r.ServiceID,
		Date:                  date,
		StartTime:             startTime,
	}

	if strings.TrimSpace(r.ClientName) != "" || strings.TrimSpace(r.ClientPhone) != "" {
		req.Client = &createBooking.ClientIdentity{
			Name:  r.ClientName,
			Phone: r.ClientPhone,
			Email: r.ClientEmail,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                    resp.ID,
		ClientID:              resp.ClientID,
		ProfessionalServiceID: resp.ProfessionalServiceID,
		ProfessionalID:        resp.ProfessionalID,
		ServiceID:             resp.ServiceID,
		Date:                  resp.BookingDate.Format(domain.DateFormat),
		StartTime:             resp.StartTime.String(),
		EndTime:               resp.EndTime.String(),
		Status:                resp.Status,
		ClientCreated:         resp.ClientCreated,
		ActivationToken:       resp.ActivationToken,
		CreatedAt:             resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             resp.UpdatedAt.Format(time.RFC3339),
	}
}
