package domain

import (
	"strings"
	"time"
	"unicode"
)

// ClientStatus статус учетной записи клиента
type ClientStatus string

const (
	ClientActive            ClientStatus = "active"
	ClientPendingActivation ClientStatus = "pending_activation"
)

// Client клиент салона. Телефон уникален и служит ключом дедупликации.
type Client struct {
	ID                  int64
	Name                string
	Phone               string
	Email               *string
	Status              ClientStatus
	ActivationTokenHash *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NormalizePhone оставляет в номере только цифры (и ведущий +)
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		if unicode.IsDigit(r) || (i == 0 && r == '+') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
