package user

import (
	"context"
	"net/http"
	"time"

	"estoqueti/internal/api/response"
	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/middleware"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, actor domain.Actor, form domain.PasswordChange) error
	ResetPassword(ctx context.Context, id string) error
	CreateUser(ctx context.Context, form domain.UserForm) (domain.User, error)
	UpdateUser(ctx context.Context, id string, form domain.UserForm) (domain.User, error)
	ToggleStatus(ctx context.Context, id string) (domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, id string) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Handler agrupa os handlers de autenticação e de administração de usuários.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário
// @Description Valida perfil, e-mail e senha e retorna um token JWT de sessão.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Perfil, e-mail e senha"
// @Success 200 {object} domain.Session "Sessão criada"
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes"
// @Failure 401 {object} domain.ErrorResponse "E-mail ou senha incorretos"
// @Failure 403 {object} domain.ErrorResponse "Usuário inativo"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	session, err := h.Service.Login(r.Context(), req)
	response.Handle(w, r, h.Logger, session, err, http.StatusOK)
}

// LogoutHandler lida com a requisição POST /v1/logout.
// @Summary Encerra a sessão
// @Description Revoga o token atual até a sua expiração.
// @Tags auth
// @Success 204 "Sessão encerrada"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		response.Handle(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão não encontrada."), 0)
		return
	}

	err := h.Service.Logout(r.Context(), claims.TokenID, claims.ExpiresAt)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// MeHandler lida com a requisição GET /v1/me.
// @Summary Usuário autenticado
// @Tags auth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := response.Actor(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	user, err := h.Service.GetUser(r.Context(), actor.UserID)
	response.Handle(w, r, h.Logger, user, err, http.StatusOK)
}

// ChangePasswordHandler lida com a requisição PUT /v1/me/password.
// @Summary Troca a própria senha
// @Tags auth
// @Accept json
// @Param form body domain.PasswordChange true "Senha antiga, nova e confirmação"
// @Success 204 "Senha alterada"
// @Failure 400 {object} domain.ErrorResponse "Senha antiga incorreta, confirmação divergente ou senha curta"
// @Security ApiKeyAuth
// @Router /me/password [put]
func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := response.Actor(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	var form domain.PasswordChange
	if err := response.DecodeJSON(r, &form); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	err = h.Service.ChangePassword(r.Context(), actor, form)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// ListUsersHandler lida com a requisição GET /v1/users.
// @Summary Lista usuários
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Failure 403 {object} domain.ErrorResponse "Apenas administradores"
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	response.Handle(w, r, h.Logger, users, err, http.StatusOK)
}

// CreateUserHandler lida com a requisição POST /v1/users.
// @Summary Cadastra um usuário
// @Description O usuário é criado ativo e com a senha padrão.
// @Tags users
// @Accept json
// @Produce json
// @Param user body domain.UserForm true "Dados do usuário"
// @Success 201 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 409 {object} domain.ErrorResponse "E-mail já cadastrado"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.UserForm
	if err := response.DecodeJSON(r, &form); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	user, err := h.Service.CreateUser(r.Context(), form)
	response.Handle(w, r, h.Logger, user, err, http.StatusCreated)
}

// GetUserHandler lida com a requisição GET /v1/users/{id}.
// @Summary Obtém um usuário por ID
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUser(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, user, err, http.StatusOK)
}

// UpdateUserHandler lida com a requisição PUT /v1/users/{id}.
// @Summary Atualiza um usuário
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID do usuário"
// @Param user body domain.UserForm true "Dados do usuário"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 409 {object} domain.ErrorResponse "E-mail já cadastrado"
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.UserForm
	if err := response.DecodeJSON(r, &form); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	user, err := h.Service.UpdateUser(r.Context(), r.PathValue("id"), form)
	response.Handle(w, r, h.Logger, user, err, http.StatusOK)
}

// DeleteUserHandler lida com a requisição DELETE /v1/users/{id}.
// @Summary Exclui um usuário
// @Tags users
// @Param id path string true "ID do usuário"
// @Success 204 "Usuário excluído"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Tentativa de excluir o próprio usuário"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := response.Actor(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	err = h.Service.DeleteUser(r.Context(), actor, r.PathValue("id"))
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// ToggleStatusHandler lida com a requisição POST /v1/users/{id}/toggle-status.
// @Summary Ativa ou inativa um usuário
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Security ApiKeyAuth
// @Router /users/{id}/toggle-status [post]
func (h *Handler) ToggleStatusHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.ToggleStatus(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, user, err, http.StatusOK)
}

// ResetPasswordHandler lida com a requisição POST /v1/users/{id}/reset-password.
// @Summary Redefine a senha para o padrão
// @Tags users
// @Param id path string true "ID do usuário"
// @Success 204 "Senha redefinida"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Security ApiKeyAuth
// @Router /users/{id}/reset-password [post]
func (h *Handler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.ResetPassword(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}
