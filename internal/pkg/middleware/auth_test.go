package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/cache"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/middleware"
	"estoqueti/internal/pkg/token"
	"estoqueti/internal/repository/seed"
	"estoqueti/internal/repository/userrepo"
)

func newAuthChain(t *testing.T) (*token.Service, *token.Denylist, http.HandlerFunc) {
	tokenSvc, denylist, _, handler := newAuthChainWithUsers(t)
	return tokenSvc, denylist, handler
}

func newAuthChainWithUsers(t *testing.T) (*token.Service, *token.Denylist, *userrepo.UserRepository, http.HandlerFunc) {
	t.Helper()
	log := logger.NewLogger("debug")
	tokenSvc := token.NewService("segredo", time.Hour)
	denylist := token.NewDenylist(cache.NewMemoryClient())
	users := userrepo.NewUserRepository(log, seed.Users("hash")...)
	auth := middleware.NewAuthMiddleware(tokenSvc, denylist, users, log)

	handler := auth(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Actor", actor.UserID+"|"+actor.Name+"|"+string(actor.Role))
		w.WriteHeader(http.StatusNoContent)
	})
	return tokenSvc, denylist, users, handler
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	_, _, handler := newAuthChain(t)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokenSvc, _, handler := newAuthChain(t)
	tok, _, err := tokenSvc.GenerateToken("2", "SOLICITANTE", "João Solicitante")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2|João Solicitante|SOLICITANTE", rec.Header().Get("X-Actor"))
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	tokenSvc, denylist, handler := newAuthChain(t)
	tok, expiresAt, err := tokenSvc.GenerateToken("2", "SOLICITANTE", "João Solicitante")
	require.NoError(t, err)
	claims, err := tokenSvc.ValidateToken(tok)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), claims.ID, expiresAt))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sessão encerrada")
}

func TestPermissionMiddleware(t *testing.T) {
	admin := middleware.PermissionMiddleware(domain.RoleAdmin)
	handler := admin(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	withRole := func(role domain.UserRole) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
		ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, middleware.UserClaims{UserID: "x", Role: role})
		return req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	handler(rec, withRole(domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler(rec, withRole(domain.RoleSolicitante))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_QueryTokenOnlyForWebSocket(t *testing.T) {
	tokenSvc, _, handler := newAuthChain(t)
	tok, _, err := tokenSvc.GenerateToken("1", "ADMIN", "Carlos Administrador")
	require.NoError(t, err)

	plain := httptest.NewRequest(http.MethodGet, "/v1/events/ws?token="+tok, nil)
	rec := httptest.NewRecorder()
	handler(rec, plain)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	upgrade := httptest.NewRequest(http.MethodGet, "/v1/events/ws?token="+tok, nil)
	upgrade.Header.Set("Connection", "Upgrade")
	upgrade.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	handler(rec, upgrade)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthMiddleware_RoleComesFromStoredUser(t *testing.T) {
	tokenSvc, _, _, handler := newAuthChainWithUsers(t)
	// Token emitido quando o usuário 2 ainda era administrador.
	tok, _, err := tokenSvc.GenerateToken("2", "ADMIN", "Nome Antigo")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2|João Solicitante|SOLICITANTE", rec.Header().Get("X-Actor"))
}

func TestAuthMiddleware_InactiveOrRemovedUser(t *testing.T) {
	tokenSvc, _, users, handler := newAuthChainWithUsers(t)
	ctx := context.Background()

	joaoToken, _, err := tokenSvc.GenerateToken("2", "SOLICITANTE", "João Solicitante")
	require.NoError(t, err)
	mariaToken, _, err := tokenSvc.GenerateToken("3", "SOLICITANTE", "Maria Engenharia")
	require.NoError(t, err)

	joao, err := users.GetUserByID(ctx, "2")
	require.NoError(t, err)
	joao.Status = domain.StatusInativo
	_, err = users.UpdateUser(ctx, joao)
	require.NoError(t, err)
	require.NoError(t, users.DeleteUser(ctx, "3"))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+joaoToken)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Usuário inativo")

	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+mariaToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
