package domain

import "errors"

// Таксономия ошибок. Сентинелы слоев оборачивают их, а HTTP-слой
// сопоставляет категорию со статусом ответа через errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidInterval = errors.New("invalid interval")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
)
