package create_booking

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptTokenIssuer выпускает случайный UUID-токен и хранит его bcrypt-хеш
type BcryptTokenIssuer struct {
	cost int
}

func NewBcryptTokenIssuer(cost int) *BcryptTokenIssuer {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptTokenIssuer{cost: cost}
}

func (i *BcryptTokenIssuer) Issue() (string, string, error) {
	token := uuid.NewString()

	hash, err := bcrypt.GenerateFromPassword([]byte(token), i.cost)
	if err != nil {
		return "", "", fmt.Errorf("hash activation token: %w", err)
	}

	return token, string(hash), nil
}
