package model

import (
	"time"

	"github.com/google/uuid"
)

// Location kinds. Exactly one facility row is expected; it is seeded at
// startup and is the only location credited by production runs.
const (
	LocationKindFacility = "facility"
	LocationKindStore    = "store"
)

// Location is either the Production Facility or a named store.
// Status: "active" | "inactive"
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Address   *string
	Kind      string `gorm:"type:varchar(20);not null;default:'store'"`
	Status    string `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
