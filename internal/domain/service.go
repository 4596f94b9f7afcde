package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service a bookable treatment. Deactivated instead of deleted so history keeps its references.
type Service struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
