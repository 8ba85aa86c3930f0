package bankaccount

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankAccount represents a bank account record. Balance is the stored
// running balance, mutated only when a linked transaction is marked paid.
type BankAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null;size:100"`
	Bank      string    `gorm:"not null;size:100"`
	Balance   float64   `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the BankAccount model.
func (BankAccount) TableName() string {
	return "bank_accounts"
}
