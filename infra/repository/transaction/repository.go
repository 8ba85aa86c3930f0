package transaction

import (
	"context"
	"database/sql"
	"time"

	infrarepo "github.com/TeamSorcerers/app-financeiro-sub000/infra"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	txrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository bound to the provided *gorm.DB.
func New(db *gorm.DB) txrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.TransactionCreate,
) error {
	tx := &Transaction{
		ID:              create.ID,
		GroupID:         create.GroupID,
		CategoryID:      create.CategoryID,
		BankAccountID:   create.BankAccountID,
		CreditCardID:    create.CreditCardID,
		PaymentMethodID: create.PaymentMethodID,
		CreatedByID:     create.CreatedByID,
		Description:     create.Description,
		Amount:          create.Amount,
		Type:            string(create.Type),
		Status:          string(create.Status),
		IsPaid:          create.IsPaid,
		TransactionDate: create.TransactionDate,
		DueDate:         create.DueDate,
		PaidAt:          create.PaidAt,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(tx).Error,
	)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.TransactionUpdate,
) error {
	updates := make(map[string]interface{})
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.BankAccountID != nil {
		updates["bank_account_id"] = *update.BankAccountID
	}
	if update.CreditCardID != nil {
		updates["credit_card_id"] = *update.CreditCardID
	}
	if update.PaymentMethodID != nil {
		updates["payment_method_id"] = *update.PaymentMethodID
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.TransactionDate != nil {
		updates["transaction_date"] = *update.TransactionDate
	}
	if update.DueDate != nil {
		updates["due_date"] = *update.DueDate
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// listRow carries a transaction plus its joined display names.
type listRow struct {
	Transaction
	GroupName       string
	CategoryName    sql.NullString
	BankAccountName sql.NullString
	CreditCardName  sql.NullString
	CreditCardLast4 sql.NullString
	CreatedByName   sql.NullString
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.TransactionRead, error) {
	var row listRow
	err := r.listQuery(ctx).
		Where("transactions.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapRowToDTO(&row), nil
}

func (r *repository) List(
	ctx context.Context,
	filter dto.TransactionFilter,
) ([]*dto.TransactionRead, error) {
	q := r.listQuery(ctx)

	if len(filter.GroupIDs) > 0 {
		q = q.Where("transactions.group_id IN ?", filter.GroupIDs)
	}
	if filter.DateFrom != nil {
		q = q.Where("transactions.transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("transactions.transaction_date <= ?", *filter.DateTo)
	}
	if filter.CategoryID != nil {
		q = q.Where("transactions.category_id = ?", *filter.CategoryID)
	}
	if filter.BankAccountID != nil {
		q = q.Where("transactions.bank_account_id = ?", *filter.BankAccountID)
	}
	if filter.CreditCardID != nil {
		q = q.Where("transactions.credit_card_id = ?", *filter.CreditCardID)
	}
	if filter.Type != nil {
		q = q.Where("transactions.type = ?", string(*filter.Type))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("transactions.status IN ?", statuses)
	}
	if filter.IsPaid != nil {
		q = q.Where("transactions.is_paid = ?", *filter.IsPaid)
	}
	if filter.UnlinkedOnly {
		q = q.Where("transactions.bank_account_id IS NULL AND transactions.credit_card_id IS NULL")
	}
	if filter.WithoutCreditCard {
		q = q.Where("transactions.credit_card_id IS NULL")
	}

	var rows []listRow
	err := q.Order("transactions.transaction_date DESC").Scan(&rows).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	reads := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		reads = append(reads, mapRowToDTO(&rows[i]))
	}
	return reads, nil
}

// MarkPaid matches unpaid rows only, so concurrent pay requests race on the
// database row instead of on an application-level read-then-write.
func (r *repository) MarkPaid(
	ctx context.Context,
	id uuid.UUID,
	paidAt time.Time,
) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND is_paid = ?", id, false).
		Updates(map[string]interface{}{
			"is_paid": true,
			"status":  string(txdomain.StatusPaid),
			"paid_at": paidAt,
		})
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Delete(&Transaction{}, "id = ?", id).Error,
	)
}

func (r *repository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&Transaction{}).
		Select(`transactions.*,
			g.name AS group_name,
			c.name AS category_name,
			ba.name AS bank_account_name,
			cc.name AS credit_card_name,
			cc.last_4_digits AS credit_card_last4,
			u.username AS created_by_name`).
		Joins("JOIN financial_groups g ON g.id = transactions.group_id").
		Joins("LEFT JOIN financial_categories c ON c.id = transactions.category_id").
		Joins("LEFT JOIN bank_accounts ba ON ba.id = transactions.bank_account_id").
		Joins("LEFT JOIN credit_cards cc ON cc.id = transactions.credit_card_id").
		Joins("LEFT JOIN users u ON u.id = transactions.created_by_id")
}

func mapRowToDTO(row *listRow) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:              row.ID,
		GroupID:         row.GroupID,
		GroupName:       row.GroupName,
		CategoryID:      row.CategoryID,
		CategoryName:    row.CategoryName.String,
		BankAccountID:   row.BankAccountID,
		BankAccountName: row.BankAccountName.String,
		CreditCardID:    row.CreditCardID,
		CreditCardName:  row.CreditCardName.String,
		CreditCardLast4: row.CreditCardLast4.String,
		PaymentMethodID: row.PaymentMethodID,
		CreatedByID:     row.CreatedByID,
		CreatedByName:   row.CreatedByName.String,
		Description:     row.Description,
		Amount:          row.Amount,
		Type:            txdomain.Type(row.Type),
		Status:          txdomain.Status(row.Status),
		IsPaid:          row.IsPaid,
		TransactionDate: row.TransactionDate,
		DueDate:         row.DueDate,
		PaidAt:          row.PaidAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

var _ txrepo.Repository = (*repository)(nil)
