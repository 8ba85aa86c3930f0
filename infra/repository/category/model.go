package category

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialCategory represents a category record scoped to one group.
// Name uniqueness is enforced per group.
type FinancialCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_group_name"`
	Name      string    `gorm:"not null;size:100;uniqueIndex:idx_category_group_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the FinancialCategory model.
func (FinancialCategory) TableName() string {
	return "financial_categories"
}
