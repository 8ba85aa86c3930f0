// Package repository defines the unit-of-work contract shared by all
// persistence implementations.
package repository

import "context"

// UnitOfWork provides a transaction boundary and type-safe repository access
// in one abstraction. Keeping GetRepository on the unit of work guarantees
// that every repository obtained inside Do is bound to the same DB session,
// so a multi-repository operation commits or rolls back atomically.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The provided UnitOfWork
	// hands out repositories bound to that transaction. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository bound to the current transaction.
	// The argument is a typed nil pointer to the repository interface:
	//
	//	repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
	//	repo := repoAny.(userrepo.Repository)
	GetRepository(repoType any) (any, error)
}
