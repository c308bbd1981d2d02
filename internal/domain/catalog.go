package domain

import "time"

// Professional специалист салона
type Professional struct {
	ID        int64
	Name      string
	Phone     string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service услуга салона
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProfessionalService связь "специалист оказывает услугу"; бронирование ссылается на неё
type ProfessionalService struct {
	ID             int64
	ProfessionalID int64
	ServiceID      int64
	CreatedAt      time.Time
}
