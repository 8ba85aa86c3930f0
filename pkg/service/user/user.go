// Package user provides business logic for user management. Registration
// also creates the user's personal group inside the same transaction.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	userrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/utils"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// CreateUser creates a user and their personal group atomically. If either
// write fails, neither survives.
func (s *Service) CreateUser(
	ctx context.Context,
	username, email, password string,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
		if err != nil {
			return err
		}
		repo, ok := repoAny.(userrepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}

		if taken, err := repo.ExistsByUsername(ctx, username); err != nil {
			return err
		} else if taken {
			return domain.ErrAlreadyExists
		}
		if taken, err := repo.ExistsByEmail(ctx, email); err != nil {
			return err
		} else if taken {
			return domain.ErrAlreadyExists
		}

		u, err = user.New(username, email, password)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
		}); err != nil {
			return err
		}

		groupRepoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
		if err != nil {
			return err
		}
		groupRepo, ok := groupRepoAny.(grouprepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}

		personal, err := groupdomain.NewPersonal("Pessoal", u.ID)
		if err != nil {
			return err
		}
		if err := groupRepo.Create(ctx, dto.GroupCreate{
			ID:          personal.ID,
			Name:        personal.Name,
			Type:        personal.Type,
			CreatedByID: personal.CreatedByID,
		}); err != nil {
			return err
		}
		return groupRepo.AddMember(ctx, personal.ID, u.ID, true)
	})
	if err != nil {
		u = nil
		return
	}
	s.logger.Info("user created", "userID", u.ID)
	return
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
		if err != nil {
			return err
		}
		repo, ok := repoAny.(userrepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// UpdateUser updates the caller's own record. Passwords are hashed before
// they reach the repository.
func (s *Service) UpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	update dto.UserUpdate,
) (err error) {
	if update.Password != nil {
		hashed, err := utils.HashPassword(*update.Password)
		if err != nil {
			return err
		}
		update.Password = &hashed
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
		if err != nil {
			return err
		}
		repo, ok := repoAny.(userrepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}
		if existing, err := repo.Get(ctx, userID); err != nil {
			return err
		} else if existing == nil {
			return user.ErrUserNotFound
		}
		return repo.Update(ctx, userID, &update)
	})
}

// DeleteUser removes a user by ID.
func (s *Service) DeleteUser(
	ctx context.Context,
	userID uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
		if err != nil {
			return err
		}
		repo, ok := repoAny.(userrepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}
		if existing, err := repo.Get(ctx, userID); err != nil {
			return err
		} else if existing == nil {
			return user.ErrUserNotFound
		}
		return repo.Delete(ctx, userID)
	})
}
