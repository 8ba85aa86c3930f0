package category

import (
	"context"

	infrarepo "github.com/TeamSorcerers/app-financeiro-sub000/infra"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	categoryrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/category"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a category repository bound to the provided *gorm.DB.
func New(db *gorm.DB) categoryrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.CategoryCreate,
) error {
	c := &FinancialCategory{
		ID:      create.ID,
		GroupID: create.GroupID,
		Name:    create.Name,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(c).Error,
	)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.CategoryUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&FinancialCategory{}).
			Where("id = ?", id).
			Updates(updates).Error,
	)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.CategoryRead, error) {
	var c FinancialCategory
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*dto.CategoryRead, error) {
	var categories []FinancialCategory
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	reads := make([]*dto.CategoryRead, 0, len(categories))
	for i := range categories {
		reads = append(reads, mapModelToDTO(&categories[i]))
	}
	return reads, nil
}

func (r *repository) ExistsByName(
	ctx context.Context,
	groupID uuid.UUID,
	name string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FinancialCategory{}).
		Where("group_id = ? AND name = ?", groupID, name).
		Count(&count).Error
	if err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Delete(&FinancialCategory{}, "id = ?", id).Error,
	)
}

func mapModelToDTO(c *FinancialCategory) *dto.CategoryRead {
	return &dto.CategoryRead{
		ID:        c.ID,
		GroupID:   c.GroupID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

var _ categoryrepo.Repository = (*repository)(nil)
