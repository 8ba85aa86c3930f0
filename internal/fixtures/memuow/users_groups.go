package memuow

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
)

type memUserRepo struct{ s *store }

func (r *memUserRepo) Create(ctx context.Context, create *dto.UserCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == create.Email || u.Username == create.Username {
			return domain.ErrAlreadyExists
		}
	}
	now := time.Now()
	r.s.users[create.ID] = &dto.UserRead{
		ID:             create.ID,
		Username:       create.Username,
		HashedPassword: create.Password,
		Email:          create.Email,
		Name:           create.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.HashedPassword = *update.Password
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memUserRepo) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type memGroupRepo struct{ s *store }

func (r *memGroupRepo) Create(ctx context.Context, create dto.GroupCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	r.s.groups[create.ID] = &dto.GroupRead{
		ID:          create.ID,
		Name:        create.Name,
		Description: create.Description,
		Type:        create.Type,
		CreatedByID: create.CreatedByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return nil
}

func (r *memGroupRepo) Update(ctx context.Context, id uuid.UUID, update dto.GroupUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.groups[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		g.Name = *update.Name
	}
	if update.Description != nil {
		g.Description = *update.Description
	}
	g.UpdatedAt = time.Now()
	return nil
}

func (r *memGroupRepo) Get(ctx context.Context, id uuid.UUID) (*dto.GroupRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *g
	copied.MemberCount = len(r.s.members[id])
	return &copied, nil
}

func (r *memGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.groups[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.groups, id)
	delete(r.s.members, id)
	return nil
}

func (r *memGroupRepo) ListCollaborativeForUser(ctx context.Context, userID uuid.UUID) ([]*dto.GroupRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.GroupRead
	for groupID, members := range r.s.members {
		if _, ok := members[userID]; !ok {
			continue
		}
		g, ok := r.s.groups[groupID]
		if !ok || g.Type != groupdomain.TypeCollaborative {
			continue
		}
		copied := *g
		copied.MemberCount = len(members)
		out = append(out, &copied)
	}
	sortGroups(out)
	return out, nil
}

func (r *memGroupRepo) GetPersonalForUser(ctx context.Context, userID uuid.UUID) (*dto.GroupRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Type == groupdomain.TypePersonal && g.CreatedByID == userID {
			copied := *g
			copied.MemberCount = len(r.s.members[g.ID])
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memGroupRepo) AccessibleGroupIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for groupID, members := range r.s.members {
		if _, ok := members[userID]; ok && !seen[groupID] {
			seen[groupID] = true
			out = append(out, groupID)
		}
	}
	for _, g := range r.s.groups {
		if g.CreatedByID == userID && !seen[g.ID] {
			seen[g.ID] = true
			out = append(out, g.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func (r *memGroupRepo) AccessibleGroups(ctx context.Context, userID uuid.UUID) ([]*dto.GroupRead, error) {
	ids, err := r.AccessibleGroupIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*dto.GroupRead, 0, len(ids))
	for _, id := range ids {
		g, ok := r.s.groups[id]
		if !ok {
			continue
		}
		copied := *g
		copied.MemberCount = len(r.s.members[id])
		out = append(out, &copied)
	}
	sortGroups(out)
	return out, nil
}

func (r *memGroupRepo) AddMember(ctx context.Context, groupID, userID uuid.UUID, isOwner bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.groups[groupID]; !ok {
		return domain.ErrNotFound
	}
	members, ok := r.s.members[groupID]
	if !ok {
		members = make(map[uuid.UUID]membership)
		r.s.members[groupID] = members
	}
	if _, exists := members[userID]; exists {
		return domain.ErrAlreadyExists
	}
	members[userID] = membership{isOwner: isOwner, joinedAt: time.Now()}
	return nil
}

func (r *memGroupRepo) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	members, ok := r.s.members[groupID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, exists := members[userID]; !exists {
		return domain.ErrNotFound
	}
	delete(members, userID)
	return nil
}

func (r *memGroupRepo) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.members[groupID][userID]
	return ok, nil
}

func (r *memGroupRepo) IsOwner(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[groupID][userID]
	return ok && m.isOwner, nil
}

func (r *memGroupRepo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*dto.GroupMemberRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	members := r.s.members[groupID]
	out := make([]*dto.GroupMemberRead, 0, len(members))
	for userID, m := range members {
		row := &dto.GroupMemberRead{
			UserID:   userID,
			GroupID:  groupID,
			IsOwner:  m.isOwner,
			JoinedAt: m.joinedAt,
		}
		if u, ok := r.s.users[userID]; ok {
			row.Username = u.Username
			row.Email = u.Email
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID.String() < out[j].UserID.String() })
	return out, nil
}

func sortGroups(groups []*dto.GroupRead) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].ID.String() < groups[j].ID.String()
	})
}
