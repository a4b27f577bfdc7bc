package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer statuses. "pending" and "in-transit" are informational — stock
// only moves on the transition into "completed". Terminal states:
// completed, cancelled, rejected.
const (
	TransferPending   = "pending"
	TransferInTransit = "in-transit"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
	TransferRejected  = "rejected"
)

// TransferRequest describes an intended stock movement between two locations.
// Invariant: FromLocationID != ToLocationID. Current stock must always be
// read from inventory_records, not derived from the transfer log.
type TransferRequest struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	FromLocationID uuid.UUID       `gorm:"type:uuid;not null"`
	ToLocationID   uuid.UUID       `gorm:"type:uuid;not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	TransferredBy  uuid.UUID       `gorm:"type:uuid;not null"`
	LedgerApplied  bool            `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Product *Product  `gorm:"foreignKey:ProductID"`
	From    *Location `gorm:"foreignKey:FromLocationID"`
	To      *Location `gorm:"foreignKey:ToLocationID"`
}

func (TransferRequest) TableName() string { return "transfer_requests" }
