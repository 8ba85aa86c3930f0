// Package group provides business logic for financial groups and their
// membership, the access-control boundary for all financial data.
package group

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	"github.com/google/uuid"
)

// Service provides business logic for group operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// CreateGroup creates a collaborative group with the caller as owner.
func (s *Service) CreateGroup(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (g *dto.GroupRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		created, err := groupdomain.New(name, description, userID)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.GroupCreate{
			ID:          created.ID,
			Name:        created.Name,
			Description: created.Description,
			Type:        created.Type,
			CreatedByID: created.CreatedByID,
		}); err != nil {
			return err
		}
		if err := repo.AddMember(ctx, created.ID, userID, true); err != nil {
			return err
		}
		g, err = repo.Get(ctx, created.ID)
		return err
	})
	if err != nil {
		g = nil
		return
	}
	s.logger.Info("group created", "groupID", g.ID, "userID", userID)
	return
}

// GetGroup retrieves a group the caller is a member of.
func (s *Service) GetGroup(
	ctx context.Context,
	userID, groupID uuid.UUID,
) (g *dto.GroupRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, repo, groupID, userID); err != nil {
			return err
		}
		g, err = repo.Get(ctx, groupID)
		return err
	})
	if err != nil {
		g = nil
	}
	return
}

// ListGroups lists the caller's collaborative groups.
func (s *Service) ListGroups(
	ctx context.Context,
	userID uuid.UUID,
) (groups []*dto.GroupRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		groups, err = repo.ListCollaborativeForUser(ctx, userID)
		return err
	})
	return
}

// GetPersonalGroup retrieves the caller's personal group.
func (s *Service) GetPersonalGroup(
	ctx context.Context,
	userID uuid.UUID,
) (g *dto.GroupRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		g, err = repo.GetPersonalForUser(ctx, userID)
		return err
	})
	if err != nil {
		g = nil
	}
	return
}

// UpdateGroup updates a group's name or description. Only owners may do
// this, and personal groups are immutable.
func (s *Service) UpdateGroup(
	ctx context.Context,
	userID, groupID uuid.UUID,
	update dto.GroupUpdate,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		g, err := repo.Get(ctx, groupID)
		if err != nil {
			return err
		}
		if g.Type == groupdomain.TypePersonal {
			return groupdomain.ErrPersonalGroupImmutable
		}
		if err := requireOwner(ctx, repo, groupID, userID); err != nil {
			return err
		}
		return repo.Update(ctx, groupID, update)
	})
}

// DeleteGroup deletes a collaborative group. Personal groups cannot be
// deleted.
func (s *Service) DeleteGroup(
	ctx context.Context,
	userID, groupID uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		g, err := repo.Get(ctx, groupID)
		if err != nil {
			return err
		}
		if g.Type == groupdomain.TypePersonal {
			return groupdomain.ErrPersonalGroupImmutable
		}
		if err := requireOwner(ctx, repo, groupID, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, groupID)
	})
}

// AddMember adds a user to a collaborative group. Only owners may invite,
// and personal groups cannot be shared.
func (s *Service) AddMember(
	ctx context.Context,
	callerID, groupID, newMemberID uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		g, err := repo.Get(ctx, groupID)
		if err != nil {
			return err
		}
		if g.Type == groupdomain.TypePersonal {
			return groupdomain.ErrPersonalGroupImmutable
		}
		if err := requireOwner(ctx, repo, groupID, callerID); err != nil {
			return err
		}
		return repo.AddMember(ctx, groupID, newMemberID, false)
	})
	if err != nil {
		return err
	}
	return s.bus.Emit(ctx, events.GroupMemberAdded{
		GroupID:    groupID,
		UserID:     newMemberID,
		AddedByID:  callerID,
		OccurredAt: time.Now().UTC(),
	})
}

// RemoveMember removes a member. Owners can remove anyone but themselves;
// members can leave.
func (s *Service) RemoveMember(
	ctx context.Context,
	callerID, groupID, memberID uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		g, err := repo.Get(ctx, groupID)
		if err != nil {
			return err
		}
		if g.Type == groupdomain.TypePersonal {
			return groupdomain.ErrPersonalGroupImmutable
		}
		if callerID != memberID {
			if err := requireOwner(ctx, repo, groupID, callerID); err != nil {
				return err
			}
		}
		if g.CreatedByID == memberID {
			return groupdomain.ErrNotOwner
		}
		return repo.RemoveMember(ctx, groupID, memberID)
	})
}

// ListMembers lists a group's members. Any member may look.
func (s *Service) ListMembers(
	ctx context.Context,
	userID, groupID uuid.UUID,
) (members []*dto.GroupMemberRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, repo, groupID, userID); err != nil {
			return err
		}
		members, err = repo.ListMembers(ctx, groupID)
		return err
	})
	return
}

func getRepo(uow repository.UnitOfWork) (grouprepo.Repository, error) {
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(grouprepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}

func requireMember(
	ctx context.Context,
	repo grouprepo.Repository,
	groupID, userID uuid.UUID,
) error {
	member, err := repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return groupdomain.ErrNotMember
	}
	return nil
}

func requireOwner(
	ctx context.Context,
	repo grouprepo.Repository,
	groupID, userID uuid.UUID,
) error {
	owner, err := repo.IsOwner(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !owner {
		return groupdomain.ErrNotOwner
	}
	return nil
}
