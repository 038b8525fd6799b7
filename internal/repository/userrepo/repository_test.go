package userrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/repository/seed"
	"estoqueti/internal/repository/userrepo"
)

func newRepo() *userrepo.UserRepository {
	return userrepo.NewUserRepository(logger.NewLogger("debug"), seed.Users("hash")...)
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	repo := newRepo()

	u, err := repo.GetUserByEmail(context.Background(), "  ADMIN@Amazonas.com.br ")

	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newRepo()

	_, err := repo.CreateUser(context.Background(), domain.User{Name: "Outro João", Email: "JOAO@amazonas.com.br"})

	assert.IsType(t, &apperror.ConflictError{}, err)
}

func TestCreateAndDeleteUser(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, domain.User{Name: "Ana", Email: "ana@amazonas.com.br", Role: domain.RoleSolicitante})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	list, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)
	assert.Equal(t, created.ID, list[5].ID)

	require.NoError(t, repo.DeleteUser(ctx, created.ID))
	_, err = repo.GetUserByID(ctx, created.ID)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestUpdateUser_EmailOfAnotherUser(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	u, err := repo.GetUserByID(ctx, "2")
	require.NoError(t, err)
	u.Email = "maria@amazonas.com.br"

	_, err = repo.UpdateUser(ctx, u)
	assert.IsType(t, &apperror.ConflictError{}, err)
}
