package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/category"
	"github.com/google/uuid"
)

type env struct {
	svc    *category.Service
	userID uuid.UUID
	group  uuid.UUID
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()

	userID := uuid.New()
	groupID := uuid.New()
	ctx := context.Background()
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(grouprepo.Repository)
	require.NoError(t, repo.Create(ctx, dto.GroupCreate{
		ID:          groupID,
		Name:        "Household",
		Type:        groupdomain.TypeCollaborative,
		CreatedByID: userID,
	}))
	require.NoError(t, repo.AddMember(ctx, groupID, userID, true))

	return &env{svc: category.New(uow, logger), userID: userID, group: groupID}
}

func TestCreateCategory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, err := e.svc.CreateCategory(ctx, e.userID, e.group, "  Food  ")
	require.NoError(t, err)
	assert.Equal(t, "Food", c.Name)
	assert.Equal(t, e.group, c.GroupID)
}

func TestCreateCategory_NonMember(t *testing.T) {
	e := newEnv(t)

	c, err := e.svc.CreateCategory(context.Background(), uuid.New(), e.group, "Food")
	assert.ErrorIs(t, err, groupdomain.ErrNotMember)
	assert.Nil(t, c)
}

func TestCreateCategory_DuplicateNameInGroup(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Food")
	require.NoError(t, err)

	c, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Food")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Nil(t, c)
}

func TestListCategories_OrderedByName(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Transport")
	require.NoError(t, err)
	_, err = e.svc.CreateCategory(ctx, e.userID, e.group, "Food")
	require.NoError(t, err)

	list, err := e.svc.ListCategories(ctx, e.userID, e.group)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Food", list[0].Name)
	assert.Equal(t, "Transport", list[1].Name)
}

func TestUpdateCategory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Food")
	require.NoError(t, err)

	name := "Groceries"
	require.NoError(t, e.svc.UpdateCategory(ctx, e.userID, c.ID, dto.CategoryUpdate{Name: &name}))

	list, err := e.svc.ListCategories(ctx, e.userID, e.group)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Groceries", list[0].Name)
}

func TestUpdateCategory_DuplicateName(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Food")
	require.NoError(t, err)
	c, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Transport")
	require.NoError(t, err)

	name := "Food"
	err = e.svc.UpdateCategory(ctx, e.userID, c.ID, dto.CategoryUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestDeleteCategory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Food")
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteCategory(ctx, e.userID, c.ID))

	list, err := e.svc.ListCategories(ctx, e.userID, e.group)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteCategory_NonMember(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, err := e.svc.CreateCategory(ctx, e.userID, e.group, "Food")
	require.NoError(t, err)

	err = e.svc.DeleteCategory(ctx, uuid.New(), c.ID)
	assert.ErrorIs(t, err, groupdomain.ErrNotMember)
}
