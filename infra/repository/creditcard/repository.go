package creditcard

import (
	"context"

	infrarepo "github.com/TeamSorcerers/app-financeiro-sub000/infra"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	creditcardrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/creditcard"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a credit card repository bound to the provided *gorm.DB.
func New(db *gorm.DB) creditcardrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.CreditCardCreate,
) error {
	cardType := create.Type
	if cardType == "" {
		cardType = dto.CardTypeCredit
	}
	c := &CreditCard{
		ID:          create.ID,
		UserID:      create.UserID,
		Name:        create.Name,
		Last4Digits: create.Last4Digits,
		Brand:       create.Brand,
		Type:        string(cardType),
		CreditLimit: create.CreditLimit,
		ClosingDay:  create.ClosingDay,
		DueDay:      create.DueDay,
		IsActive:    true,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(c).Error,
	)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.CreditCardUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.CreditLimit != nil {
		updates["credit_limit"] = *update.CreditLimit
	}
	if update.ClosingDay != nil {
		updates["closing_day"] = *update.ClosingDay
	}
	if update.DueDay != nil {
		updates["due_day"] = *update.DueDay
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&CreditCard{}).
			Where("id = ?", id).
			Updates(updates).Error,
	)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.CreditCardRead, error) {
	var c CreditCard
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.CreditCardRead, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *repository) ListActiveCreditByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.CreditCardRead, error) {
	return r.list(r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND type IN ?",
			userID, true,
			[]string{string(dto.CardTypeCredit), string(dto.CardTypeBoth)}))
}

func (r *repository) ListByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]*dto.CreditCardRead, error) {
	if len(ids) == 0 {
		return []*dto.CreditCardRead{}, nil
	}
	return r.list(r.db.WithContext(ctx).Where("id IN ?", ids))
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Delete(&CreditCard{}, "id = ?", id).Error,
	)
}

func (r *repository) list(q *gorm.DB) ([]*dto.CreditCardRead, error) {
	var cards []CreditCard
	if err := q.Order("created_at").Find(&cards).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	reads := make([]*dto.CreditCardRead, 0, len(cards))
	for i := range cards {
		reads = append(reads, mapModelToDTO(&cards[i]))
	}
	return reads, nil
}

func mapModelToDTO(c *CreditCard) *dto.CreditCardRead {
	return &dto.CreditCardRead{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Last4Digits: c.Last4Digits,
		Brand:       c.Brand,
		Type:        dto.CardType(c.Type),
		CreditLimit: c.CreditLimit,
		ClosingDay:  c.ClosingDay,
		DueDay:      c.DueDay,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

var _ creditcardrepo.Repository = (*repository)(nil)
