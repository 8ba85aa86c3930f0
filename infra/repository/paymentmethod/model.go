package paymentmethod

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethod represents an informational payment tag. It never affects
// balance math.
type PaymentMethod struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null;size:100"`
	Type        string    `gorm:"not null;size:50"`
	Description string    `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the PaymentMethod model.
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
