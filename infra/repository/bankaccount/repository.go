package bankaccount

import (
	"context"

	infrarepo "github.com/TeamSorcerers/app-financeiro-sub000/infra"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	bankaccountrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/bankaccount"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a bank account repository bound to the provided *gorm.DB.
func New(db *gorm.DB) bankaccountrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.BankAccountCreate,
) error {
	a := &BankAccount{
		ID:       create.ID,
		UserID:   create.UserID,
		Name:     create.Name,
		Bank:     create.Bank,
		Balance:  create.Balance,
		IsActive: true,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(a).Error,
	)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.BankAccountUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Bank != nil {
		updates["bank"] = *update.Bank
	}
	if update.Balance != nil {
		updates["balance"] = *update.Balance
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&BankAccount{}).
			Where("id = ?", id).
			Updates(updates).Error,
	)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.BankAccountRead, error) {
	var a BankAccount
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&a), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.BankAccountRead, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *repository) ListActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.BankAccountRead, error) {
	return r.list(r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true))
}

// ApplyDelta is a single conditional update: for withdrawals the balance
// precondition sits in the WHERE clause, so the check and the write cannot
// be separated by a concurrent writer.
func (r *repository) ApplyDelta(
	ctx context.Context,
	id uuid.UUID,
	delta float64,
) error {
	q := r.db.WithContext(ctx).Model(&BankAccount{}).
		Where("id = ?", id)
	if delta < 0 {
		q = q.Where("balance >= ?", -delta)
	}
	res := q.Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&BankAccount{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return infrarepo.MapGormErrorToDomain(err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientBalance
	}
	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Delete(&BankAccount{}, "id = ?", id).Error,
	)
}

func (r *repository) list(q *gorm.DB) ([]*dto.BankAccountRead, error) {
	var accounts []BankAccount
	if err := q.Order("created_at").Find(&accounts).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	reads := make([]*dto.BankAccountRead, 0, len(accounts))
	for i := range accounts {
		reads = append(reads, mapModelToDTO(&accounts[i]))
	}
	return reads, nil
}

func mapModelToDTO(a *BankAccount) *dto.BankAccountRead {
	return &dto.BankAccountRead{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Bank:      a.Bank,
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

var _ bankaccountrepo.Repository = (*repository)(nil)
