package transaction

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction represents a persisted financial transaction. Amount is always
// non-negative; the sign is implied by Type.
type Transaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key"`
	GroupID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;index"`
	BankAccountID   *uuid.UUID `gorm:"type:uuid;index"`
	CreditCardID    *uuid.UUID `gorm:"type:uuid;index"`
	PaymentMethodID *uuid.UUID `gorm:"type:uuid"`
	CreatedByID     uuid.UUID  `gorm:"type:uuid;not null"`
	Description     string     `gorm:"size:500"`
	Amount          float64    `gorm:"type:decimal(15,2);not null"`
	Type            string     `gorm:"type:varchar(16);not null;index"`
	Status          string     `gorm:"type:varchar(32);not null;default:'PENDING';index"`
	IsPaid          bool       `gorm:"not null;default:false;index"`
	TransactionDate time.Time  `gorm:"not null;index"`
	DueDate         *time.Time
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
