package memuow

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
)

type memTransactionRepo struct{ s *store }

func (r *memTransactionRepo) Create(ctx context.Context, create dto.TransactionCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	r.s.transactions[create.ID] = &dto.TransactionRead{
		ID:              create.ID,
		GroupID:         create.GroupID,
		CategoryID:      create.CategoryID,
		BankAccountID:   create.BankAccountID,
		CreditCardID:    create.CreditCardID,
		PaymentMethodID: create.PaymentMethodID,
		CreatedByID:     create.CreatedByID,
		Description:     create.Description,
		Amount:          create.Amount,
		Type:            create.Type,
		Status:          create.Status,
		IsPaid:          create.IsPaid,
		TransactionDate: create.TransactionDate,
		DueDate:         create.DueDate,
		PaidAt:          create.PaidAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return nil
}

func (r *memTransactionRepo) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.CategoryID != nil {
		t.CategoryID = update.CategoryID
	}
	if update.BankAccountID != nil {
		t.BankAccountID = update.BankAccountID
	}
	if update.CreditCardID != nil {
		t.CreditCardID = update.CreditCardID
	}
	if update.PaymentMethodID != nil {
		t.PaymentMethodID = update.PaymentMethodID
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Amount != nil {
		t.Amount = *update.Amount
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.TransactionDate != nil {
		t.TransactionDate = *update.TransactionDate
	}
	if update.DueDate != nil {
		t.DueDate = update.DueDate
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (r *memTransactionRepo) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.enrich(t), nil
}

func (r *memTransactionRepo) List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.TransactionRead
	for _, t := range r.s.transactions {
		if !matches(t, filter) {
			continue
		}
		out = append(out, r.enrich(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// MarkPaid only matches unpaid rows, mirroring the conditional UPDATE of the
// SQL implementation.
func (r *memTransactionRepo) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.IsPaid {
		return domain.ErrNotFound
	}
	t.IsPaid = true
	t.Status = txdomain.StatusPaid
	at := paidAt
	t.PaidAt = &at
	t.UpdatedAt = time.Now()
	return nil
}

func (r *memTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

// enrich attaches the related display names the way the SQL reads join them.
// Caller holds the store lock.
func (r *memTransactionRepo) enrich(t *dto.TransactionRead) *dto.TransactionRead {
	copied := *t
	if g, ok := r.s.groups[t.GroupID]; ok {
		copied.GroupName = g.Name
	}
	if t.CategoryID != nil {
		if c, ok := r.s.categories[*t.CategoryID]; ok {
			copied.CategoryName = c.Name
		}
	}
	if t.BankAccountID != nil {
		if b, ok := r.s.bankAccounts[*t.BankAccountID]; ok {
			copied.BankAccountName = b.Name
		}
	}
	if t.CreditCardID != nil {
		if cc, ok := r.s.creditCards[*t.CreditCardID]; ok {
			copied.CreditCardName = cc.Name
			copied.CreditCardLast4 = cc.Last4Digits
		}
	}
	if u, ok := r.s.users[t.CreatedByID]; ok {
		copied.CreatedByName = u.Username
	}
	return &copied
}

func matches(t *dto.TransactionRead, f dto.TransactionFilter) bool {
	if len(f.GroupIDs) > 0 {
		found := false
		for _, id := range f.GroupIDs {
			if t.GroupID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.DateFrom != nil && t.TransactionDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.TransactionDate.After(*f.DateTo) {
		return false
	}
	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}
	if f.BankAccountID != nil && (t.BankAccountID == nil || *t.BankAccountID != *f.BankAccountID) {
		return false
	}
	if f.CreditCardID != nil && (t.CreditCardID == nil || *t.CreditCardID != *f.CreditCardID) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if t.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.IsPaid != nil && t.IsPaid != *f.IsPaid {
		return false
	}
	if f.UnlinkedOnly && (t.BankAccountID != nil || t.CreditCardID != nil) {
		return false
	}
	if f.WithoutCreditCard && t.CreditCardID != nil {
		return false
	}
	return true
}
