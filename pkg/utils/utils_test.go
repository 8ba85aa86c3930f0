package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/utils"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, utils.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, utils.IsEmail("alice@example.com"))
	assert.False(t, utils.IsEmail("alice"))
	assert.False(t, utils.IsEmail(""))
}
