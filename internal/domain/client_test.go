package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234", NormalizePhone("555-1234"))
	assert.Equal(t, "5551234", NormalizePhone(" (555) 12 34 "))
	assert.Equal(t, "+79991234567", NormalizePhone("+7 999 123-45-67"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestBookingTransitions(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.OccupiesSlot())
	assert.True(t, b.CanBeCancelled())
	assert.True(t, b.CanBeCompleted())

	b.Status = StatusCompleted
	assert.True(t, b.OccupiesSlot())
	assert.False(t, b.CanBeCancelled())
	assert.False(t, b.CanBeCompleted())

	b.Status = StatusCancelled
	assert.False(t, b.OccupiesSlot())
	assert.False(t, b.CanBeCompleted())
}
