package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier holds commercial contact data for ingredient providers.
type Supplier struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	ContactName *string
	Email       *string
	Phone       *string
	Address     *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
