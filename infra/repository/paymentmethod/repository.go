package paymentmethod

import (
	"context"

	infrarepo "github.com/TeamSorcerers/app-financeiro-sub000/infra"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	paymentmethodrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/paymentmethod"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a payment method repository bound to the provided *gorm.DB.
func New(db *gorm.DB) paymentmethodrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.PaymentMethodCreate,
) error {
	m := &PaymentMethod{
		ID:          create.ID,
		UserID:      create.UserID,
		Name:        create.Name,
		Type:        create.Type,
		Description: create.Description,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(m).Error,
	)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.PaymentMethodUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&PaymentMethod{}).
			Where("id = ?", id).
			Updates(updates).Error,
	)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.PaymentMethodRead, error) {
	var m PaymentMethod
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&m), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.PaymentMethodRead, error) {
	var methods []PaymentMethod
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&methods).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	reads := make([]*dto.PaymentMethodRead, 0, len(methods))
	for i := range methods {
		reads = append(reads, mapModelToDTO(&methods[i]))
	}
	return reads, nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Delete(&PaymentMethod{}, "id = ?", id).Error,
	)
}

func mapModelToDTO(m *PaymentMethod) *dto.PaymentMethodRead {
	return &dto.PaymentMethodRead{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Type:        m.Type,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

var _ paymentmethodrepo.Repository = (*repository)(nil)
