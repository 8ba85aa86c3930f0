// Package memuow provides an in-memory UnitOfWork with map-backed
// repositories for service tests. The fakes mirror the SQL semantics of the
// GORM implementations: conditional single-row updates, membership joins, and
// filter predicates behave the same way, just without a database.
package memuow

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	bankaccountrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/bankaccount"
	categoryrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/category"
	creditcardrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/creditcard"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	paymentmethodrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/paymentmethod"
	transactionrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	userrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/user"
	"github.com/google/uuid"
)

type membership struct {
	isOwner  bool
	joinedAt time.Time
}

// store is the shared backing state of every fake repository.
type store struct {
	mu sync.Mutex

	users          map[uuid.UUID]*dto.UserRead
	groups         map[uuid.UUID]*dto.GroupRead
	members        map[uuid.UUID]map[uuid.UUID]membership
	transactions   map[uuid.UUID]*dto.TransactionRead
	categories     map[uuid.UUID]*dto.CategoryRead
	bankAccounts   map[uuid.UUID]*dto.BankAccountRead
	creditCards    map[uuid.UUID]*dto.CreditCardRead
	paymentMethods map[uuid.UUID]*dto.PaymentMethodRead
}

// MemUoW is an in-memory repository.UnitOfWork.
type MemUoW struct {
	store    *store
	registry map[reflect.Type]any
}

// New creates an empty in-memory unit of work.
func New() *MemUoW {
	s := &store{
		users:          make(map[uuid.UUID]*dto.UserRead),
		groups:         make(map[uuid.UUID]*dto.GroupRead),
		members:        make(map[uuid.UUID]map[uuid.UUID]membership),
		transactions:   make(map[uuid.UUID]*dto.TransactionRead),
		categories:     make(map[uuid.UUID]*dto.CategoryRead),
		bankAccounts:   make(map[uuid.UUID]*dto.BankAccountRead),
		creditCards:    make(map[uuid.UUID]*dto.CreditCardRead),
		paymentMethods: make(map[uuid.UUID]*dto.PaymentMethodRead),
	}
	u := &MemUoW{store: s}
	u.registry = map[reflect.Type]any{
		reflect.TypeOf((*userrepo.Repository)(nil)).Elem():          userrepo.Repository(&memUserRepo{s}),
		reflect.TypeOf((*grouprepo.Repository)(nil)).Elem():         grouprepo.Repository(&memGroupRepo{s}),
		reflect.TypeOf((*transactionrepo.Repository)(nil)).Elem():   transactionrepo.Repository(&memTransactionRepo{s}),
		reflect.TypeOf((*categoryrepo.Repository)(nil)).Elem():      categoryrepo.Repository(&memCategoryRepo{s}),
		reflect.TypeOf((*bankaccountrepo.Repository)(nil)).Elem():   bankaccountrepo.Repository(&memBankAccountRepo{s}),
		reflect.TypeOf((*creditcardrepo.Repository)(nil)).Elem():    creditcardrepo.Repository(&memCreditCardRepo{s}),
		reflect.TypeOf((*paymentmethodrepo.Repository)(nil)).Elem(): paymentmethodrepo.Repository(&memPaymentMethodRepo{s}),
	}
	return u
}

// Do runs fn against the same state; there is no real transaction to roll
// back, so a returned error simply propagates.
func (u *MemUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

// GetRepository resolves a repository by the interface pointer type, matching
// the production lookup convention.
func (u *MemUoW) GetRepository(repoType any) (any, error) {
	t := reflect.TypeOf(repoType)
	if t == nil || t.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("repository type must be a pointer to an interface, got %T", repoType)
	}
	repo, ok := u.registry[t.Elem()]
	if !ok {
		return nil, fmt.Errorf("no repository registered for %s", t.Elem())
	}
	return repo, nil
}

var _ repository.UnitOfWork = (*MemUoW)(nil)
