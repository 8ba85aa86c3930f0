package creditcard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditCard represents a card record. Debt is never stored here; credit
// exposure is derived from linked expense transactions.
type CreditCard struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null;size:100"`
	Last4Digits string    `gorm:"column:last_4_digits;not null;size:4"`
	Brand       string    `gorm:"not null;size:50"`
	Type        string    `gorm:"type:varchar(16);not null;default:'CREDIT';index"`
	CreditLimit *float64  `gorm:"type:decimal(15,2)"`
	ClosingDay  *int
	DueDay      *int
	IsActive    bool `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the CreditCard model.
func (CreditCard) TableName() string {
	return "credit_cards"
}
