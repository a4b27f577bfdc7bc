package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a completed checkout at a store. Immutable once created except for
// Status (reversal) and Reseco (post-hoc cash reconciliation deduction).
// Status: "completed" | "reversed"
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID string          `gorm:"uniqueIndex;not null"`
	LocationID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// GlobalDiscount is the operator-entered amount; WholesaleDiscount is the
	// rule-based amount. The two stack additively.
	GlobalDiscount    decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	WholesaleDiscount decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Tax               decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Total             decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PaymentMethod     string           `gorm:"type:varchar(20);not null"`
	Reseco            *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status            string           `gorm:"type:varchar(20);not null;default:'completed'"`
	SoldBy            uuid.UUID        `gorm:"type:uuid;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Location *Location  `gorm:"foreignKey:LocationID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
