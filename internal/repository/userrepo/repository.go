package userrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// UserRepository guarda os usuários em memória, protegido por um RWMutex.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	order  []string // Ordem de cadastro
	logger logger.Logger
}

// NewUserRepository cria o repositório, opcionalmente com uma carga inicial.
func NewUserRepository(log logger.Logger, seed ...domain.User) *UserRepository {
	r := &UserRepository{users: make(map[string]domain.User), logger: log}
	for _, u := range seed {
		r.users[u.ID] = u
		r.order = append(r.order, u.ID)
	}
	return r
}

// emailTaken deve ser chamado com o lock adquirido.
func (r *UserRepository) emailTaken(email, exceptID string) bool {
	normalized := domain.NormalizeEmail(email)
	for id, u := range r.users {
		if id != exceptID && domain.NormalizeEmail(u.Email) == normalized {
			return true
		}
	}
	return false
}

// CreateUser insere um novo usuário. E-mails são únicos sem diferenciar maiúsculas.
func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, apperror.NewInternalError("Operação cancelada.", err)
	}
	r.logger.Debug("Iniciando criação de usuário no repositório.", map[string]interface{}{"email": user.Email})

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		r.logger.Warn("E-mail já cadastrado.", map[string]interface{}{"email": user.Email})
		return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O e-mail '%s' já está em uso.", user.Email))
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	r.users[user.ID] = user
	r.order = append(r.order, user.ID)

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// GetUserByID busca um usuário pelo ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário %s não encontrado.", id))
	}
	return u, nil
}

// GetUserByEmail busca um usuário pelo e-mail, sem diferenciar maiúsculas.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := domain.NormalizeEmail(email)
	for _, id := range r.order {
		if u := r.users[id]; domain.NormalizeEmail(u.Email) == normalized {
			return u, nil
		}
	}
	return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
}

// ListUsers retorna todos os usuários na ordem de cadastro.
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	return users, nil
}

// UpdateUser substitui os dados de um usuário existente.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[user.ID]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário %s não encontrado.", user.ID))
	}
	if r.emailTaken(user.Email, user.ID) {
		return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O e-mail '%s' já está em uso.", user.Email))
	}

	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user

	r.logger.Info("Usuário atualizado no repositório.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// DeleteUser remove um usuário (exclusão definitiva).
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("Usuário %s não encontrado.", id))
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.Info("Usuário removido do repositório.", map[string]interface{}{"user_id": id})
	return nil
}
