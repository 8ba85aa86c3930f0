// Package repository implements the unit of work and GORM adapters behind
// the pkg/repository interfaces.
package repository

import (
	"context"
	"fmt"
	"reflect"

	infrabankaccount "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/bankaccount"
	infracategory "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/category"
	infracreditcard "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/creditcard"
	infragroup "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/group"
	infrapaymentmethod "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/paymentmethod"
	infratransaction "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/transaction"
	infrauser "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	bankaccountrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/bankaccount"
	categoryrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/category"
	creditcardrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/creditcard"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	paymentmethodrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/paymentmethod"
	transactionrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	userrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one
// abstraction. Every repository handed out inside Do is constructed over the
// same *gorm.DB transaction, so multi-repository operations are atomic.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*userrepo.Repository)(nil)).Elem():          func(db *gorm.DB) any { return infrauser.New(db) },
			reflect.TypeOf((*grouprepo.Repository)(nil)).Elem():         func(db *gorm.DB) any { return infragroup.New(db) },
			reflect.TypeOf((*transactionrepo.Repository)(nil)).Elem():   func(db *gorm.DB) any { return infratransaction.New(db) },
			reflect.TypeOf((*categoryrepo.Repository)(nil)).Elem():      func(db *gorm.DB) any { return infracategory.New(db) },
			reflect.TypeOf((*bankaccountrepo.Repository)(nil)).Elem():   func(db *gorm.DB) any { return infrabankaccount.New(db) },
			reflect.TypeOf((*creditcardrepo.Repository)(nil)).Elem():    func(db *gorm.DB) any { return infracreditcard.New(db) },
			reflect.TypeOf((*paymentmethodrepo.Repository)(nil)).Elem(): func(db *gorm.DB) any { return infrapaymentmethod.New(db) },
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW bound to that
// transaction for repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository resolves a repository bound to the current transaction. The
// argument is a typed nil pointer to the repository interface, e.g.
// (*userrepo.Repository)(nil).
func (u *UoW) GetRepository(repoType any) (any, error) {
	t := reflect.TypeOf(repoType)
	if t == nil || t.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("repository type must be a typed nil interface pointer, got %T", repoType)
	}
	constructor, ok := u.repoRegistry[t.Elem()]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", t.Elem())
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
