package userservice

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// minPasswordLength é o tamanho mínimo aceito na troca de senha.
const minPasswordLength = 4

// UserRepository define o contrato de persistência de usuários.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(userID, userRole, name string) (string, time.Time, error)
}

// TokenRevoker invalida tokens no logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Validator valida formulários com tags `validate`.
type Validator interface {
	Struct(s interface{}) error
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo  UserRepository
	TokenSvc  TokenService
	Revoker   TokenRevoker
	validator Validator
	logger    logger.Logger

	defaultPassword string
	hashCost        int
}

// NewService cria uma nova instância do UserService.
// defaultPassword é a senha atribuída a novos usuários e nas redefinições feitas pelo administrador.
func NewService(repo UserRepository, tokenSvc TokenService, revoker TokenRevoker, v Validator, logger logger.Logger, defaultPassword string) *UserService {
	return &UserService{
		UserRepo:        repo,
		TokenSvc:        tokenSvc,
		Revoker:         revoker,
		validator:       v,
		logger:          logger,
		defaultPassword: defaultPassword,
		hashCost:        bcrypt.DefaultCost,
	}
}

// HashPassword gera o hash bcrypt de uma senha em texto puro.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}
	return string(hashed), nil
}

// Login autentica o usuário pelo perfil, e-mail e senha e emite um token de sessão.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	s.logger.Debug("Iniciando login no serviço.", map[string]interface{}{"email": req.Email, "role": req.Role})

	// 1. Validação Básica
	if err := s.validator.Struct(req); err != nil {
		return domain.Session{}, err
	}

	// 2. Buscar Usuário pelo Email
	invalid := apperror.NewUnauthorizedError("E-mail ou senha incorretos.")
	user, err := s.UserRepo.GetUserByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		// NotFound vira 401 para não indicar quais e-mails existem.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			s.logger.Warn("Tentativa de login com e-mail desconhecido.", map[string]interface{}{"email": req.Email})
			return domain.Session{}, invalid
		}
		s.logger.Error("Falha ao buscar usuário no login.", err)
		return domain.Session{}, repoError(err, "Falha interna ao autenticar.")
	}

	// 3. Perfil e senha
	if user.Role != req.Role {
		s.logger.Warn("Perfil informado não confere.", map[string]interface{}{"user_id": user.ID})
		return domain.Session{}, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Senha incorreta no login.", map[string]interface{}{"user_id": user.ID})
		return domain.Session{}, invalid
	}

	// 4. Conta ativa
	if !user.IsActive() {
		s.logger.Warn("Login de usuário inativo.", map[string]interface{}{"user_id": user.ID})
		return domain.Session{}, apperror.NewForbiddenError("Usuário inativo. Contate o administrador.")
	}

	// 5. Gerar JWT
	tokenString, expiresAt, err := s.TokenSvc.GenerateToken(user.ID, string(user.Role), user.Name)
	if err != nil {
		s.logger.Error("Falha ao gerar token.", err)
		return domain.Session{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"user_id": user.ID})
	return domain.Session{Token: tokenString, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revoga o token da sessão atual até a sua expiração.
func (s *UserService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := s.Revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		s.logger.Error("Falha ao revogar token.", err)
		return apperror.NewInternalError("Falha interna ao encerrar sessão.", err)
	}
	s.logger.Info("Sessão encerrada.", map[string]interface{}{"token_id": tokenID})
	return nil
}

// ChangePassword troca a senha do próprio usuário.
func (s *UserService) ChangePassword(ctx context.Context, actor domain.Actor, form domain.PasswordChange) error {
	// 1. Campos obrigatórios
	if err := s.validator.Struct(form); err != nil {
		return err
	}

	user, err := s.UserRepo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return repoError(err, "Falha interna ao buscar usuário.")
	}

	// 2. Senha atual, confirmação e tamanho, nesta ordem
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.OldPassword)); err != nil {
		return apperror.NewValidationError("Senha antiga incorreta.")
	}
	if form.NewPassword != form.ConfirmPassword {
		return apperror.NewValidationError("A nova senha e a confirmação não conferem.")
	}
	if utf8.RuneCountInString(form.NewPassword) < minPasswordLength {
		return apperror.NewValidationError("A nova senha deve ter pelo menos 4 caracteres.")
	}

	// 3. Persistência
	if err := s.setPassword(ctx, user, form.NewPassword); err != nil {
		return err
	}
	s.logger.Info("Senha alterada pelo usuário.", map[string]interface{}{"user_id": user.ID})
	return nil
}

// ResetPassword redefine a senha do usuário para a senha padrão.
func (s *UserService) ResetPassword(ctx context.Context, id string) error {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return repoError(err, "Falha interna ao buscar usuário.")
	}
	if err := s.setPassword(ctx, user, s.defaultPassword); err != nil {
		return err
	}
	s.logger.Info("Senha redefinida para o padrão.", map[string]interface{}{"user_id": id})
	return nil
}

func (s *UserService) setPassword(ctx context.Context, user domain.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}
	user.PasswordHash = string(hashed)
	user.UpdatedAt = time.Now()
	if _, err := s.UserRepo.UpdateUser(ctx, user); err != nil {
		s.logger.Error("Falha ao gravar nova senha.", err)
		return repoError(err, "Falha interna ao atualizar senha.")
	}
	return nil
}

// CreateUser cadastra um usuário ativo com a senha padrão.
func (s *UserService) CreateUser(ctx context.Context, form domain.UserForm) (domain.User, error) {
	s.logger.Debug("Iniciando criação de usuário no serviço.", map[string]interface{}{"email": form.Email})

	form = normalizeUserForm(form)
	if err := s.validator.Struct(form); err != nil {
		s.logger.Warn("Cadastro de usuário inválido.", map[string]interface{}{"error": err.Error()})
		return domain.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), s.hashCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	now := time.Now()
	user, err := s.UserRepo.CreateUser(ctx, domain.User{
		Name:           form.Name,
		Email:          form.Email,
		PasswordHash:   string(hashed),
		Role:           form.Role,
		Department:     form.Department,
		RegistrationID: form.RegistrationID,
		Company:        form.Company,
		Status:         domain.StatusAtivo,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		s.logger.Error("Falha ao criar usuário.", err)
		return domain.User{}, repoError(err, "Falha interna ao criar usuário.")
	}

	s.logger.Info("Usuário criado com sucesso.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// UpdateUser altera os dados cadastrais. Senha e status não mudam por aqui.
func (s *UserService) UpdateUser(ctx context.Context, id string, form domain.UserForm) (domain.User, error) {
	form = normalizeUserForm(form)
	if err := s.validator.Struct(form); err != nil {
		return domain.User{}, err
	}

	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, repoError(err, "Falha interna ao buscar usuário.")
	}

	user.Name = form.Name
	user.Email = form.Email
	user.Role = form.Role
	user.Department = form.Department
	user.RegistrationID = form.RegistrationID
	user.Company = form.Company
	user.UpdatedAt = time.Now()

	updated, err := s.UserRepo.UpdateUser(ctx, user)
	if err != nil {
		s.logger.Error("Falha ao atualizar usuário.", err)
		return domain.User{}, repoError(err, "Falha interna ao atualizar usuário.")
	}
	s.logger.Info("Usuário atualizado.", map[string]interface{}{"user_id": id})
	return updated, nil
}

// ToggleStatus alterna o usuário entre ATIVO e INATIVO.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (domain.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, repoError(err, "Falha interna ao buscar usuário.")
	}

	user.Status = user.Status.Toggle()
	user.UpdatedAt = time.Now()
	updated, err := s.UserRepo.UpdateUser(ctx, user)
	if err != nil {
		s.logger.Error("Falha ao alterar status do usuário.", err)
		return domain.User{}, repoError(err, "Falha interna ao atualizar usuário.")
	}
	s.logger.Info("Status do usuário alterado.", map[string]interface{}{"user_id": id, "status": updated.Status})
	return updated, nil
}

// DeleteUser remove um usuário. O administrador não pode remover a própria conta.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Actor, id string) error {
	if actor.UserID == id {
		return apperror.NewConflictError("Você não pode excluir o próprio usuário.")
	}
	if err := s.UserRepo.DeleteUser(ctx, id); err != nil {
		return repoError(err, "Falha interna ao excluir usuário.")
	}
	s.logger.Info("Usuário excluído.", map[string]interface{}{"user_id": id})
	return nil
}

// GetUser retorna um usuário pelo ID.
func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, repoError(err, "Falha interna ao buscar usuário.")
	}
	return user, nil
}

// ListUsers retorna todos os usuários.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.UserRepo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar usuários.", err)
		return nil, repoError(err, "Falha interna ao listar usuários.")
	}
	return users, nil
}

func normalizeUserForm(form domain.UserForm) domain.UserForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = domain.NormalizeEmail(form.Email)
	form.Department = strings.TrimSpace(form.Department)
	form.RegistrationID = strings.TrimSpace(form.RegistrationID)
	form.Company = strings.TrimSpace(form.Company)
	return form
}

func repoError(err error, msg string) error {
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
