package group

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialGroup represents a group record in the database.
type FinancialGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null;size:100"`
	Description string    `gorm:"size:500"`
	Type        string    `gorm:"type:varchar(16);not null;default:'PERSONAL';index"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the FinancialGroup model.
func (FinancialGroup) TableName() string {
	return "financial_groups"
}

// FinancialGroupMember is the membership row gating all group access.
type FinancialGroupMember struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FinancialGroupID uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsOwner          bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

// TableName specifies the table name for the FinancialGroupMember model.
func (FinancialGroupMember) TableName() string {
	return "financial_group_members"
}
