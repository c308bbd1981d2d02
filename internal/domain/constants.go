package domain

// Форматы даты и времени на границе API
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Разбиение диапазона при пакетном создании шаблонов
const DefaultBulkGranularityMinutes = 60

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNameLength             = 200
	MinPhoneDigits            = 5
	MaxPhoneLength            = 20
)
