package models

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// CreateProfessionalRequest новый специалист
type CreateProfessionalRequest struct {
	Name  string
	Phone string
	Email *string
}

// CreateServiceRequest новая услуга
type CreateServiceRequest struct {
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
}

// ProfessionalResponse специалист
type ProfessionalResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// LinkResponse связь специалист-услуга
type LinkResponse struct {
	ID             int64 `json:"id"`
	ProfessionalID int64 `json:"professionalId"`
	ServiceID      int64 `json:"serviceId"`
}

func FromDomainProfessional(p *domain.Professional) *ProfessionalResponse {
	return &ProfessionalResponse{ID: p.ID, Name: p.Name, Phone: p.Phone, Email: p.Email}
}

func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

func FromDomainLink(l *domain.ProfessionalService) *LinkResponse {
	return &LinkResponse{ID: l.ID, ProfessionalID: l.ProfessionalID, ServiceID: l.ServiceID}
}
