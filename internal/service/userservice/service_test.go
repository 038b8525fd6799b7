package userservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/validation"
	"estoqueti/internal/repository/seed"
	"estoqueti/internal/repository/userrepo"
	"estoqueti/internal/service/userservice"
)

// MockTokenService é uma implementação mock da interface TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID, userRole, name string) (string, time.Time, error) {
	args := m.Called(userID, userRole, name)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockRevoker é uma implementação mock da interface TokenRevoker
type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newService(t *testing.T) (*userservice.UserService, *userrepo.UserRepository, *MockTokenService, *MockRevoker) {
	t.Helper()
	log := logger.NewNop()
	repo := userrepo.NewUserRepository(log, seed.Users(hash(t, "123456"))...)
	tokens := new(MockTokenService)
	revoker := new(MockRevoker)
	svc := userservice.NewService(repo, tokens, revoker, validation.New(), log, "123456")
	return svc, repo, tokens, revoker
}

func TestLogin_Success(t *testing.T) {
	svc, _, tokens, _ := newService(t)
	expiry := time.Now().Add(time.Hour)
	tokens.On("GenerateToken", "2", "SOLICITANTE", "João Solicitante").Return("signed", expiry, nil)

	session, err := svc.Login(context.Background(), domain.LoginRequest{
		Role:     domain.RoleSolicitante,
		Email:    " JOAO@amazonas.com.br ",
		Password: "123456",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed", session.Token)
	assert.Equal(t, expiry, session.ExpiresAt)
	assert.Equal(t, "2", session.User.ID)
	tokens.AssertExpectations(t)
}

// TestLogin_InvalidCredentials garante a mesma resposta para e-mail, perfil ou senha errados.
func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, tokens, _ := newService(t)
	ctx := context.Background()

	cases := map[string]domain.LoginRequest{
		"email desconhecido": {Role: domain.RoleAdmin, Email: "ninguem@amazonas.com.br", Password: "123456"},
		"perfil errado":      {Role: domain.RoleAdmin, Email: "joao@amazonas.com.br", Password: "123456"},
		"senha errada":       {Role: domain.RoleSolicitante, Email: "joao@amazonas.com.br", Password: "654321"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, req)
			assert.IsType(t, &apperror.UnauthorizedError{}, err)
			assert.Contains(t, err.Error(), "E-mail ou senha incorretos.")
		})
	}
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Role: domain.RoleAdmin, Email: "admin@amazonas.com.br"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "Preencha todos os campos.")
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ToggleStatus(ctx, "4")
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Role: domain.RoleSolicitante, Email: "teste@amazonas.com.br", Password: "123456"})

	assert.IsType(t, &apperror.ForbiddenError{}, err)
}

func TestLogout(t *testing.T) {
	svc, _, _, revoker := newService(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	revoker.On("Revoke", ctx, "jti-1", exp).Return(nil).Once()
	revoker.On("Revoke", ctx, "jti-2", exp).Return(errors.New("redis down")).Once()

	assert.NoError(t, svc.Logout(ctx, "jti-1", exp))
	err := svc.Logout(ctx, "jti-2", exp)
	assert.IsType(t, &apperror.InternalError{}, err)
	revoker.AssertExpectations(t)
}

// TestChangePassword_Order verifica a ordem das validações da troca de senha.
func TestChangePassword_Order(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	joao := domain.Actor{UserID: "2", Name: "João Solicitante", Role: domain.RoleSolicitante}

	err := svc.ChangePassword(ctx, joao, domain.PasswordChange{OldPassword: "errada", NewPassword: "ab", ConfirmPassword: "cd"})
	assert.Contains(t, err.Error(), "Senha antiga incorreta.")

	err = svc.ChangePassword(ctx, joao, domain.PasswordChange{OldPassword: "123456", NewPassword: "ab", ConfirmPassword: "cd"})
	assert.Contains(t, err.Error(), "não conferem")

	err = svc.ChangePassword(ctx, joao, domain.PasswordChange{OldPassword: "123456", NewPassword: "abc", ConfirmPassword: "abc"})
	assert.Contains(t, err.Error(), "pelo menos 4 caracteres")

	err = svc.ChangePassword(ctx, joao, domain.PasswordChange{OldPassword: "123456", NewPassword: "nova", ConfirmPassword: ""})
	assert.Contains(t, err.Error(), "Preencha todos os campos.")
}

func TestChangePassword_ThenLogin(t *testing.T) {
	svc, _, tokens, _ := newService(t)
	ctx := context.Background()
	joao := domain.Actor{UserID: "2", Name: "João Solicitante", Role: domain.RoleSolicitante}
	tokens.On("GenerateToken", "2", "SOLICITANTE", "João Solicitante").Return("signed", time.Now(), nil)

	require.NoError(t, svc.ChangePassword(ctx, joao, domain.PasswordChange{OldPassword: "123456", NewPassword: "nova", ConfirmPassword: "nova"}))

	_, err := svc.Login(ctx, domain.LoginRequest{Role: domain.RoleSolicitante, Email: "joao@amazonas.com.br", Password: "123456"})
	assert.IsType(t, &apperror.UnauthorizedError{}, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Role: domain.RoleSolicitante, Email: "joao@amazonas.com.br", Password: "nova"})
	assert.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	svc, repo, _, _ := newService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, domain.UserForm{
		Name:           "Ana Redes",
		Email:          "Ana@Amazonas.com.br",
		Role:           domain.RoleSolicitante,
		RegistrationID: "0042",
		Company:        "Amazonas Energia",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@amazonas.com.br", user.Email)
	assert.Equal(t, domain.StatusAtivo, user.Status)

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123456")))
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.UserForm{Name: "Ana", Email: "ana@amazonas.com.br", Role: domain.RoleSolicitante, RegistrationID: "12a"})
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "Matrícula deve conter apenas números.")

	_, err = svc.CreateUser(ctx, domain.UserForm{Name: "Ana", Email: "ana@amazonas.com.br", Role: "GERENTE", RegistrationID: "12"})
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.CreateUser(context.Background(), domain.UserForm{
		Name: "Outro João", Email: "JOAO@amazonas.com.br", Role: domain.RoleSolicitante, RegistrationID: "77",
	})

	assert.IsType(t, &apperror.ConflictError{}, err)
}

func TestUpdateUser_KeepsPasswordAndStatus(t *testing.T) {
	svc, repo, _, _ := newService(t)
	ctx := context.Background()
	before, _ := repo.GetUserByID(ctx, "3")

	updated, err := svc.UpdateUser(ctx, "3", domain.UserForm{
		Name: "Maria Souza", Email: "maria@amazonas.com.br", Role: domain.RoleAdmin, RegistrationID: "003", Department: "Engenharia",
	})

	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", updated.Name)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, before.PasswordHash, updated.PasswordHash)
	assert.Equal(t, before.Status, updated.Status)
}

func TestResetPassword(t *testing.T) {
	svc, repo, _, _ := newService(t)
	ctx := context.Background()
	joao := domain.Actor{UserID: "2"}

	require.NoError(t, svc.ChangePassword(ctx, joao, domain.PasswordChange{OldPassword: "123456", NewPassword: "outra", ConfirmPassword: "outra"}))
	require.NoError(t, svc.ResetPassword(ctx, "2"))

	stored, _ := repo.GetUserByID(ctx, "2")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123456")))

	assert.IsType(t, &apperror.NotFoundError{}, svc.ResetPassword(ctx, "nope"))
}

func TestDeleteUser(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	admin := domain.Actor{UserID: "1", Role: domain.RoleAdmin}

	assert.IsType(t, &apperror.ConflictError{}, svc.DeleteUser(ctx, admin, "1"))
	require.NoError(t, svc.DeleteUser(ctx, admin, "4"))

	_, err := svc.GetUser(ctx, "4")
	assert.IsType(t, &apperror.NotFoundError{}, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}
