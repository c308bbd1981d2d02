package client

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = fmt.Errorf("client.repository: client %w", domain.ErrNotFound)

	// ErrPhoneTaken возвращается при попытке создать второго клиента с тем же телефоном
	ErrPhoneTaken = fmt.Errorf("client.repository: phone already registered: %w", domain.ErrConflict)

	ErrBuildQuery = errors.New("client.repository: failed to build query")
	ErrExecQuery  = errors.New("client.repository: failed to execute query")
	ErrScanRow    = errors.New("client.repository: failed to scan row")
)
