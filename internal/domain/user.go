package domain

import (
	"strings"
	"time"
)

// User representa um usuário do almoxarifado (administrador ou solicitante).
type User struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role           UserRole     `json:"role"`
	Department     string       `json:"department"`
	RegistrationID string       `json:"registration_id"` // Matrícula
	Company        string       `json:"company"`
	Status         RecordStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleSolicitante UserRole = "SOLICITANTE"
)

// Valid indica se o papel é conhecido.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleSolicitante
}

// RecordStatus é o status binário de cadastros (usuários e fornecedores).
type RecordStatus string

const (
	StatusAtivo   RecordStatus = "ATIVO"
	StatusInativo RecordStatus = "INATIVO"
)

// Toggle retorna o status oposto.
func (s RecordStatus) Toggle() RecordStatus {
	if s == StatusAtivo {
		return StatusInativo
	}
	return StatusAtivo
}

// IsActive indica se o usuário pode autenticar.
func (u User) IsActive() bool {
	return u.Status == StatusAtivo
}

// NormalizeEmail é usada em todas as comparações de e-mail (case-insensitive).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Actor identifica quem executa uma operação. É montado a partir das claims da sessão.
type Actor struct {
	UserID string
	Name   string
	Role   UserRole
}

// IsAdmin indica se o ator possui papel de administrador.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Session é o resultado de um login bem-sucedido.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
