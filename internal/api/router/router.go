package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"estoqueti/internal/api/dashboard"
	"estoqueti/internal/api/material"
	"estoqueti/internal/api/request"
	"estoqueti/internal/api/stock"
	"estoqueti/internal/api/supplier"
	"estoqueti/internal/api/user"
	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	User      *user.Handler
	Supplier  *supplier.Handler
	Material  *material.Handler
	Stock     *stock.Handler
	Request   *request.Handler
	Dashboard *dashboard.Handler
	Events    http.HandlerFunc
}

// NewRouter configura e retorna o roteador HTTP principal.
// auth valida a sessão; os middlewares globais são aplicados na ordem recebida (o primeiro é o mais externo).
func NewRouter(h Handlers, auth func(http.HandlerFunc) http.HandlerFunc, global ...func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleAdmin)(next))
	}

	// --- 1. Health Check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// --- 2. Autenticação ---
	mux.HandleFunc("POST /v1/login", h.User.LoginUserHandler)
	mux.HandleFunc("POST /v1/logout", auth(h.User.LogoutHandler))
	mux.HandleFunc("GET /v1/me", auth(h.User.MeHandler))
	mux.HandleFunc("PUT /v1/me/password", auth(h.User.ChangePasswordHandler))

	// --- 3. Usuários (ADMIN) ---
	mux.HandleFunc("GET /v1/users", admin(h.User.ListUsersHandler))
	mux.HandleFunc("POST /v1/users", admin(h.User.CreateUserHandler))
	mux.HandleFunc("GET /v1/users/{id}", admin(h.User.GetUserHandler))
	mux.HandleFunc("PUT /v1/users/{id}", admin(h.User.UpdateUserHandler))
	mux.HandleFunc("DELETE /v1/users/{id}", admin(h.User.DeleteUserHandler))
	mux.HandleFunc("POST /v1/users/{id}/toggle-status", admin(h.User.ToggleStatusHandler))
	mux.HandleFunc("POST /v1/users/{id}/reset-password", admin(h.User.ResetPasswordHandler))

	// --- 4. Fornecedores ---
	mux.HandleFunc("GET /v1/suppliers", auth(h.Supplier.GetAllSuppliersHandler))
	mux.HandleFunc("GET /v1/suppliers/{id}", auth(h.Supplier.GetSupplierByIDHandler))
	mux.HandleFunc("POST /v1/suppliers", admin(h.Supplier.CreateSupplierHandler))
	mux.HandleFunc("PUT /v1/suppliers/{id}", admin(h.Supplier.UpdateSupplierHandler))
	mux.HandleFunc("DELETE /v1/suppliers/{id}", admin(h.Supplier.DeleteSupplierHandler))
	mux.HandleFunc("POST /v1/suppliers/{id}/toggle-status", admin(h.Supplier.ToggleSupplierStatusHandler))

	// --- 5. Materiais ---
	mux.HandleFunc("GET /v1/materials", auth(h.Material.ListMaterialsHandler))
	mux.HandleFunc("GET /v1/materials/matchcode", auth(h.Material.MatchcodeHandler))
	mux.HandleFunc("GET /v1/materials/{id}", auth(h.Material.GetMaterialHandler))
	mux.HandleFunc("POST /v1/materials", admin(h.Material.CreateMaterialHandler))
	mux.HandleFunc("PUT /v1/materials/{id}", admin(h.Material.UpdateMaterialHandler))
	mux.HandleFunc("DELETE /v1/materials/{id}", admin(h.Material.DeleteMaterialHandler))

	// --- 6. Estoque (ADMIN) ---
	mux.HandleFunc("POST /v1/stock/entries", admin(h.Stock.RegisterEntryHandler))
	mux.HandleFunc("GET /v1/movements", admin(h.Stock.ListMovementsHandler))
	mux.HandleFunc("GET /v1/movements/export", admin(h.Stock.ExportMovementsHandler))

	// --- 7. Solicitações ---
	mux.HandleFunc("POST /v1/requests", auth(h.Request.SubmitHandler))
	mux.HandleFunc("GET /v1/requests", auth(h.Request.ListHandler))
	mux.HandleFunc("GET /v1/requests/{id}", auth(h.Request.GetHandler))
	mux.HandleFunc("PUT /v1/requests/{id}", auth(h.Request.SubmitCorrectionHandler))
	mux.HandleFunc("POST /v1/requests/{id}/cancel", auth(h.Request.CancelHandler))
	mux.HandleFunc("POST /v1/requests/{id}/attend", admin(h.Request.AttendHandler))
	mux.HandleFunc("POST /v1/requests/{id}/complete", admin(h.Request.CompleteHandler))
	mux.HandleFunc("POST /v1/requests/{id}/correction", admin(h.Request.RequestCorrectionHandler))
	mux.HandleFunc("POST /v1/requests/{id}/reject", admin(h.Request.RejectHandler))

	// --- 8. Painel e eventos ---
	mux.HandleFunc("GET /v1/dashboard", admin(h.Dashboard.SummaryHandler))
	mux.HandleFunc("GET /v1/events/ws", auth(h.Events))

	// --- 9. Middlewares globais ---
	var handler http.Handler = mux
	for i := len(global) - 1; i >= 0; i-- {
		handler = global[i](handler)
	}
	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
