package memuow

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
)

type memCategoryRepo struct{ s *store }

func (r *memCategoryRepo) Create(ctx context.Context, create dto.CategoryCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	r.s.categories[create.ID] = &dto.CategoryRead{
		ID:        create.ID,
		GroupID:   create.GroupID,
		Name:      create.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *memCategoryRepo) Update(ctx context.Context, id uuid.UUID, update dto.CategoryUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (r *memCategoryRepo) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memCategoryRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*dto.CategoryRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.CategoryRead
	for _, c := range r.s.categories {
		if c.GroupID == groupID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCategoryRepo) ExistsByName(ctx context.Context, groupID uuid.UUID, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.GroupID == groupID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

type memBankAccountRepo struct{ s *store }

func (r *memBankAccountRepo) Create(ctx context.Context, create dto.BankAccountCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	r.s.bankAccounts[create.ID] = &dto.BankAccountRead{
		ID:        create.ID,
		UserID:    create.UserID,
		Name:      create.Name,
		Bank:      create.Bank,
		Balance:   create.Balance,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *memBankAccountRepo) Update(ctx context.Context, id uuid.UUID, update dto.BankAccountUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bankAccounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		b.Name = *update.Name
	}
	if update.Bank != nil {
		b.Bank = *update.Bank
	}
	if update.Balance != nil {
		b.Balance = *update.Balance
	}
	if update.IsActive != nil {
		b.IsActive = *update.IsActive
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (r *memBankAccountRepo) Get(ctx context.Context, id uuid.UUID) (*dto.BankAccountRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bankAccounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBankAccountRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.BankAccountRead, error) {
	return r.list(userID, false)
}

func (r *memBankAccountRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*dto.BankAccountRead, error) {
	return r.list(userID, true)
}

func (r *memBankAccountRepo) list(userID uuid.UUID, activeOnly bool) ([]*dto.BankAccountRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.BankAccountRead
	for _, b := range r.s.bankAccounts {
		if b.UserID != userID {
			continue
		}
		if activeOnly && !b.IsActive {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ApplyDelta refuses a negative delta the stored balance cannot cover,
// mirroring the conditional UPDATE of the SQL implementation.
func (r *memBankAccountRepo) ApplyDelta(ctx context.Context, id uuid.UUID, delta float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bankAccounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if delta < 0 && b.Balance < -delta {
		return domain.ErrInsufficientBalance
	}
	b.Balance += delta
	b.UpdatedAt = time.Now()
	return nil
}

func (r *memBankAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bankAccounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.bankAccounts, id)
	return nil
}

type memCreditCardRepo struct{ s *store }

func (r *memCreditCardRepo) Create(ctx context.Context, create dto.CreditCardCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	r.s.creditCards[create.ID] = &dto.CreditCardRead{
		ID:          create.ID,
		UserID:      create.UserID,
		Name:        create.Name,
		Last4Digits: create.Last4Digits,
		Brand:       create.Brand,
		Type:        create.Type,
		CreditLimit: create.CreditLimit,
		ClosingDay:  create.ClosingDay,
		DueDay:      create.DueDay,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return nil
}

func (r *memCreditCardRepo) Update(ctx context.Context, id uuid.UUID, update dto.CreditCardUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.creditCards[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.CreditLimit != nil {
		c.CreditLimit = update.CreditLimit
	}
	if update.ClosingDay != nil {
		c.ClosingDay = update.ClosingDay
	}
	if update.DueDay != nil {
		c.DueDay = update.DueDay
	}
	if update.IsActive != nil {
		c.IsActive = *update.IsActive
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (r *memCreditCardRepo) Get(ctx context.Context, id uuid.UUID) (*dto.CreditCardRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.creditCards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memCreditCardRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CreditCardRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.CreditCardRead
	for _, c := range r.s.creditCards {
		if c.UserID == userID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sortCards(out)
	return out, nil
}

func (r *memCreditCardRepo) ListActiveCreditByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CreditCardRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.CreditCardRead
	for _, c := range r.s.creditCards {
		if c.UserID != userID || !c.IsActive {
			continue
		}
		if c.Type != dto.CardTypeCredit && c.Type != dto.CardTypeBoth {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sortCards(out)
	return out, nil
}

func (r *memCreditCardRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*dto.CreditCardRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.CreditCardRead
	for _, id := range ids {
		if c, ok := r.s.creditCards[id]; ok {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memCreditCardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.creditCards[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.creditCards, id)
	return nil
}

func sortCards(cards []*dto.CreditCardRead) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Name < cards[j].Name })
}

type memPaymentMethodRepo struct{ s *store }

func (r *memPaymentMethodRepo) Create(ctx context.Context, create dto.PaymentMethodCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	r.s.paymentMethods[create.ID] = &dto.PaymentMethodRead{
		ID:          create.ID,
		UserID:      create.UserID,
		Name:        create.Name,
		Type:        create.Type,
		Description: create.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return nil
}

func (r *memPaymentMethodRepo) Update(ctx context.Context, id uuid.UUID, update dto.PaymentMethodUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.paymentMethods[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Type != nil {
		p.Type = *update.Type
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memPaymentMethodRepo) Get(ctx context.Context, id uuid.UUID) (*dto.PaymentMethodRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.paymentMethods[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memPaymentMethodRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.PaymentMethodRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.PaymentMethodRead
	for _, p := range r.s.paymentMethods {
		if p.UserID == userID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPaymentMethodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.paymentMethods[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.paymentMethods, id)
	return nil
}
