package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// AddTemplateRequest запрос на добавление еженедельного окна
type AddTemplateRequest struct {
	ProfessionalID int64
	Weekday        int
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// BulkCreateRequest запрос на пакетное создание окон из диапазона даты.
// Диапазон режется на целые куски по GranularityMinutes, хвост отбрасывается.
type BulkCreateRequest struct {
	ProfessionalID     int64
	Date               time.Time
	StartTime          types.TimeString
	EndTime            types.TimeString
	GranularityMinutes int // 0 - значение по умолчанию сервиса
}

// Response модели

// TemplateResponse шаблон доступности
type TemplateResponse struct {
	ID             int64  `json:"id"`
	ProfessionalID int64  `json:"professionalId"`
	Weekday        int    `json:"weekday"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Status         string `json:"status"`
}

// TemplateListResponse список шаблонов
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Total     int                `json:"total"`
}

// FromDomainTemplate конвертирует доменный шаблон в ответ
func FromDomainTemplate(t *domain.AvailabilityTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:             t.ID,
		ProfessionalID: t.ProfessionalID,
		Weekday:        t.Weekday,
		StartTime:      t.StartTime.String(),
		EndTime:        t.EndTime.String(),
		Status:         string(t.Status),
	}
}

// FromDomainTemplateList конвертирует список шаблонов
func FromDomainTemplateList(templates []*domain.AvailabilityTemplate) *TemplateListResponse {
	resp := &TemplateListResponse{
		Templates: make([]TemplateResponse, 0, len(templates)),
		Total:     len(templates),
	}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, *FromDomainTemplate(t))
	}
	return resp
}
