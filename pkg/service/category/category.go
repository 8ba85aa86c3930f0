// Package category provides business logic for group-scoped categories.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	categoryrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/category"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	"github.com/google/uuid"
)

// Service provides business logic for category operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateCategory creates a category in a group the caller belongs to. Names
// are unique per group.
func (s *Service) CreateCategory(
	ctx context.Context,
	userID, groupID uuid.UUID,
	name string,
) (c *dto.CategoryRead, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := requireMember(ctx, uow, groupID, userID); err != nil {
			return err
		}
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if taken, err := repo.ExistsByName(ctx, groupID, name); err != nil {
			return err
		} else if taken {
			return domain.ErrAlreadyExists
		}
		id := uuid.New()
		if err := repo.Create(ctx, dto.CategoryCreate{
			ID:      id,
			GroupID: groupID,
			Name:    name,
		}); err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		c = nil
	}
	return
}

// ListCategories lists a group's categories for a member.
func (s *Service) ListCategories(
	ctx context.Context,
	userID, groupID uuid.UUID,
) (categories []*dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := requireMember(ctx, uow, groupID, userID); err != nil {
			return err
		}
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		categories, err = repo.ListByGroup(ctx, groupID)
		return err
	})
	return
}

// UpdateCategory renames a category, keeping the per-group uniqueness rule.
func (s *Service) UpdateCategory(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.CategoryUpdate,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, uow, existing.GroupID, userID); err != nil {
			return err
		}
		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return domain.ErrValidation
			}
			if name != existing.Name {
				if taken, err := repo.ExistsByName(ctx, existing.GroupID, name); err != nil {
					return err
				} else if taken {
					return domain.ErrAlreadyExists
				}
			}
			update.Name = &name
		}
		return repo.Update(ctx, id, update)
	})
}

// DeleteCategory removes a category from a group the caller belongs to.
func (s *Service) DeleteCategory(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, uow, existing.GroupID, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func getRepo(uow repository.UnitOfWork) (categoryrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*categoryrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(categoryrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}

func requireMember(
	ctx context.Context,
	uow repository.UnitOfWork,
	groupID, userID uuid.UUID,
) error {
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	if err != nil {
		return err
	}
	repo, ok := repoAny.(grouprepo.Repository)
	if !ok {
		return fmt.Errorf("unexpected repository type")
	}
	member, err := repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return groupdomain.ErrNotMember
	}
	return nil
}
