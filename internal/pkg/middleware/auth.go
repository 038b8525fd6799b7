package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote
// (Context Keys devem ser de um tipo único para evitar colisões).
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
	RequestIDKey
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID    string
	Role      domain.UserRole
	Name      string
	TokenID   string
	ExpiresAt time.Time
}

// Actor converte as claims no ator usado pelos serviços.
func (c UserClaims) Actor() domain.Actor {
	return domain.Actor{UserID: c.UserID, Name: c.Name, Role: c.Role}
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// RevocationChecker informa se um token foi revogado (logout).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserLookup recarrega o cadastro do usuário dono do token.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT, rejeita tokens revogados
// e anexa as claims ao contexto da requisição. Papel e nome vêm do cadastro atual do usuário,
// não do token: usuários removidos ou inativados perdem o acesso imediatamente.
func NewAuthMiddleware(tokenSvc TokenService, revoked RevocationChecker, users UserLookup, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found && websocket.IsWebSocketUpgrade(r) {
				// Navegadores não enviam headers no handshake do WebSocket.
				tokenString = r.URL.Query().Get("token")
				found = tokenString != ""
			}
			if !found || tokenString == "" {
				writeError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
				writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Verificar revogação (logout)
			isRevoked, err := revoked.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				log.Error("Falha ao consultar lista de tokens revogados.", err)
				writeError(w, apperror.NewInternalError("Falha ao validar sessão.", err))
				return
			}
			if isRevoked {
				writeError(w, apperror.NewUnauthorizedError("Sessão encerrada. Faça login novamente."))
				return
			}

			// 4. Recarregar o usuário
			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if apperror.Is(err, "NOT_FOUND") {
				writeError(w, apperror.NewUnauthorizedError("Sessão inválida. Usuário não encontrado."))
				return
			}
			if err != nil {
				log.Error("Falha ao recarregar usuário da sessão.", err)
				writeError(w, apperror.NewInternalError("Falha ao validar sessão.", err))
				return
			}
			if !user.IsActive() {
				log.Warn("Sessão de usuário inativo rejeitada.", map[string]interface{}{"user_id": user.ID})
				writeError(w, apperror.NewForbiddenError("Usuário inativo. Contate o administrador."))
				return
			}

			// 5. Anexar Claims ao Contexto
			userClaims := UserClaims{
				UserID:  user.ID,
				Role:    user.Role,
				Name:    user.Name,
				TokenID: claims.ID,
			}
			if claims.ExpiresAt != nil {
				userClaims.ExpiresAt = claims.ExpiresAt.Time
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// ActorFromContext devolve o ator autenticado da requisição.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	claims, ok := GetUserClaimsFromContext(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	return claims.Actor(), true
}

// PermissionMiddleware libera o acesso apenas aos papéis informados.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Tentar extrair as Claims do contexto
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				writeError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			// 2. Verificar Permissão (AuthZ)
			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, apperror.NewForbiddenError("Você não tem a permissão necessária."))
		}
	}
}
