package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	owner := uuid.New()

	g, err := group.New("  Household  ", "shared expenses", owner)
	require.NoError(t, err)
	assert.Equal(t, "Household", g.Name)
	assert.Equal(t, group.TypeCollaborative, g.Type)
	assert.Equal(t, owner, g.CreatedByID)
	assert.False(t, g.IsPersonal())
}

func TestNew_EmptyName(t *testing.T) {
	_, err := group.New("   ", "", uuid.New())
	assert.ErrorIs(t, err, group.ErrEmptyName)
}

func TestNewPersonal(t *testing.T) {
	owner := uuid.New()

	g, err := group.NewPersonal("Pessoal", owner)
	require.NoError(t, err)
	assert.Equal(t, group.TypePersonal, g.Type)
	assert.Empty(t, g.Description)
	assert.True(t, g.IsPersonal())
}
