package group_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/TeamSorcerers/app-financeiro-sub000/infra/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/group"
	"github.com/google/uuid"
)

func newService(t *testing.T) (*group.Service, *infraeventbus.MemoryEventBus) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := infraeventbus.NewWithMemory(logger)
	return group.New(memuow.New(), bus, logger), bus
}

func TestCreateGroup(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	owner := uuid.New()

	g, err := svc.CreateGroup(ctx, owner, "Household", "shared expenses")
	require.NoError(t, err)
	assert.Equal(t, "Household", g.Name)
	assert.Equal(t, groupdomain.TypeCollaborative, g.Type)
	assert.Equal(t, owner, g.CreatedByID)
	assert.Equal(t, 1, g.MemberCount)
}

func TestCreateGroup_EmptyName(t *testing.T) {
	svc, _ := newService(t)

	g, err := svc.CreateGroup(context.Background(), uuid.New(), "   ", "")
	assert.ErrorIs(t, err, groupdomain.ErrEmptyName)
	assert.Nil(t, g)
}

func TestGetGroup_NonMember(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	g, err := svc.CreateGroup(ctx, uuid.New(), "Household", "")
	require.NoError(t, err)

	got, err := svc.GetGroup(ctx, uuid.New(), g.ID)
	assert.ErrorIs(t, err, groupdomain.ErrNotMember)
	assert.Nil(t, got)
}

func TestAddMember(t *testing.T) {
	svc, bus := newService(t)
	ctx := context.Background()
	owner := uuid.New()
	member := uuid.New()

	g, err := svc.CreateGroup(ctx, owner, "Household", "")
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(ctx, owner, g.ID, member))

	members, err := svc.ListMembers(ctx, member, g.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	published := bus.Published()
	require.Len(t, published, 1)
	added, ok := published[0].(events.GroupMemberAdded)
	require.True(t, ok)
	assert.Equal(t, g.ID, added.GroupID)
	assert.Equal(t, member, added.UserID)
	assert.Equal(t, owner, added.AddedByID)
}

func TestAddMember_OnlyOwners(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	owner := uuid.New()
	member := uuid.New()

	g, err := svc.CreateGroup(ctx, owner, "Household", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, owner, g.ID, member))

	err = svc.AddMember(ctx, member, g.ID, uuid.New())
	assert.ErrorIs(t, err, groupdomain.ErrNotOwner)
}

func TestRemoveMember(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	owner := uuid.New()
	member := uuid.New()

	g, err := svc.CreateGroup(ctx, owner, "Household", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, owner, g.ID, member))

	// The creator cannot be removed, not even by themselves.
	err = svc.RemoveMember(ctx, owner, g.ID, owner)
	assert.ErrorIs(t, err, groupdomain.ErrNotOwner)

	// Members can leave on their own.
	require.NoError(t, svc.RemoveMember(ctx, member, g.ID, member))

	members, err := svc.ListMembers(ctx, owner, g.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestRemoveMember_NonOwnerCannotRemoveOthers(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	owner := uuid.New()
	first := uuid.New()
	second := uuid.New()

	g, err := svc.CreateGroup(ctx, owner, "Household", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, owner, g.ID, first))
	require.NoError(t, svc.AddMember(ctx, owner, g.ID, second))

	err = svc.RemoveMember(ctx, first, g.ID, second)
	assert.ErrorIs(t, err, groupdomain.ErrNotOwner)
}

func TestUpdateGroup(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	owner := uuid.New()

	g, err := svc.CreateGroup(ctx, owner, "Household", "")
	require.NoError(t, err)

	name := "Family"
	require.NoError(t, svc.UpdateGroup(ctx, owner, g.ID, dto.GroupUpdate{Name: &name}))

	got, err := svc.GetGroup(ctx, owner, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Family", got.Name)
}

func TestPersonalGroupIsImmutable(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	owner := uuid.New()

	// Personal groups are created by registration; build one directly here.
	personal, err := groupdomain.NewPersonal("Pessoal", owner)
	require.NoError(t, err)
	uow := memuow.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc = group.New(uow, infraeventbus.NewWithMemory(logger), logger)
	seedPersonal(t, uow, personal)

	name := "renamed"
	err = svc.UpdateGroup(ctx, owner, personal.ID, dto.GroupUpdate{Name: &name})
	assert.ErrorIs(t, err, groupdomain.ErrPersonalGroupImmutable)

	err = svc.DeleteGroup(ctx, owner, personal.ID)
	assert.ErrorIs(t, err, groupdomain.ErrPersonalGroupImmutable)

	err = svc.AddMember(ctx, owner, personal.ID, uuid.New())
	assert.ErrorIs(t, err, groupdomain.ErrPersonalGroupImmutable)
}

func TestListGroups_ExcludesPersonal(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()
	svc := group.New(uow, infraeventbus.NewWithMemory(logger), logger)
	ctx := context.Background()
	owner := uuid.New()

	personal, err := groupdomain.NewPersonal("Pessoal", owner)
	require.NoError(t, err)
	seedPersonal(t, uow, personal)

	_, err = svc.CreateGroup(ctx, owner, "Household", "")
	require.NoError(t, err)

	groups, err := svc.ListGroups(ctx, owner)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Household", groups[0].Name)

	got, err := svc.GetPersonalGroup(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, personal.ID, got.ID)
}

func seedPersonal(t *testing.T, uow *memuow.MemUoW, personal *groupdomain.Group) {
	t.Helper()
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(grouprepo.Repository)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, dto.GroupCreate{
		ID:          personal.ID,
		Name:        personal.Name,
		Type:        personal.Type,
		CreatedByID: personal.CreatedByID,
	}))
	require.NoError(t, repo.AddMember(ctx, personal.ID, personal.CreatedByID, true))
}
