package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Production statuses. Only the transition into "completed" credits the
// Production Facility's inventory.
const (
	ProductionInProgress   = "in-progress"
	ProductionQualityCheck = "quality-check"
	ProductionCompleted    = "completed"
)

// ProductionRecord is one manufacturing run of a product.
// Quantity holds the planned weight until completion; if an actual weight is
// supplied at confirmation time it replaces the planned value.
type ProductionRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	BatchNumber string          `gorm:"uniqueIndex;not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'in-progress'"`
	// LedgerApplied flips atomically with the facility credit so that a
	// delete can check-and-clear instead of blindly re-crediting
	LedgerApplied bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Product     *Product               `gorm:"foreignKey:ProductID"`
	Ingredients []ProductionIngredient `gorm:"foreignKey:ProductionRecordID"`
}

func (ProductionRecord) TableName() string { return "production_records" }

// ProductionIngredient is one ingredient consumption line of a production run.
// Stage: "initial" (at record creation) | "additional" (at completion)
type ProductionIngredient struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductionRecordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID       uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity           decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Stage              string          `gorm:"type:varchar(20);not null;default:'initial'"`
	CreatedAt          time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (ProductionIngredient) TableName() string { return "production_ingredients" }

// Ingredient is a raw material held at the Production Facility.
// Its stock lives directly on the row — ingredients are never transferred
// between locations.
type Ingredient struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"uniqueIndex;not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Unit       string          `gorm:"not null;default:'kg'"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Active     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
