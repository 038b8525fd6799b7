// Package app monta a aplicação: repositórios, serviços, handlers e roteador.
package app

import (
	"net/http"

	"estoqueti/config"
	"estoqueti/internal/api/dashboard"
	"estoqueti/internal/api/material"
	"estoqueti/internal/api/request"
	"estoqueti/internal/api/router"
	"estoqueti/internal/api/stock"
	"estoqueti/internal/api/supplier"
	"estoqueti/internal/api/user"
	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/cache"
	"estoqueti/internal/pkg/events"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/middleware"
	"estoqueti/internal/pkg/token"
	"estoqueti/internal/pkg/validation"
	"estoqueti/internal/repository/materialrepo"
	"estoqueti/internal/repository/movementrepo"
	"estoqueti/internal/repository/requestrepo"
	"estoqueti/internal/repository/seed"
	"estoqueti/internal/repository/supplierrepo"
	"estoqueti/internal/repository/userrepo"
	"estoqueti/internal/service/dashboardservice"
	"estoqueti/internal/service/materialservice"
	"estoqueti/internal/service/requestservice"
	"estoqueti/internal/service/stockservice"
	"estoqueti/internal/service/supplierservice"
	"estoqueti/internal/service/userservice"
)

// App é a aplicação montada, pronta para ser servida.
type App struct {
	Handler http.Handler
	Hub     *events.Hub
}

// New faz a injeção de dependências (Repository -> Service -> Handler).
// Com cfg.SeedData, os repositórios começam com a carga de demonstração.
func New(cfg *config.Config, log logger.Logger, cacheClient cache.Client) (*App, error) {
	// 1. Repositórios (em memória)
	var (
		users     []domain.User
		suppliers []domain.Supplier
		materials []domain.Material
		requests  []domain.MaterialRequest
		movements []domain.Movement
	)
	if cfg.SeedData {
		hash, err := userservice.HashPassword(cfg.DefaultPassword)
		if err != nil {
			return nil, err
		}
		users = seed.Users(hash)
		suppliers = seed.Suppliers()
		materials = seed.Materials()
		requests = seed.Requests()
		movements = seed.Movements()
		log.Info("Carga de demonstração aplicada.", map[string]interface{}{"users": len(users), "materials": len(materials)})
	}

	userRepo := userrepo.NewUserRepository(log, users...)
	supplierRepo := supplierrepo.NewSupplierRepository(log, suppliers...)
	materialRepo := materialrepo.NewMaterialRepository(log, materials...)
	requestRepo := requestrepo.NewRequestRepository(log, requests...)
	movementRepo := movementrepo.NewMovementRepository(log, movements...)
	log.Debug("Repositórios inicializados.", nil)

	// 2. Infraestrutura compartilhada
	hub := events.NewHub(log)
	hub.SetActorResolver(middleware.ActorFromContext)
	validator := validation.New()
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	denylist := token.NewDenylist(cacheClient)

	// 3. Serviços
	stockSvc := stockservice.NewService(materialRepo, movementRepo, hub, validator, log)
	requestSvc := requestservice.NewService(requestRepo, materialRepo, userRepo, stockSvc, hub, validator, log, cfg.AllowNegativeStock)
	userSvc := userservice.NewService(userRepo, tokenSvc, denylist, validator, log, cfg.DefaultPassword)
	supplierSvc := supplierservice.NewService(supplierRepo, validator, log)
	materialSvc := materialservice.NewService(materialRepo, supplierRepo, validator, log)
	dashboardSvc := dashboardservice.NewService(materialRepo, requestRepo, movementRepo, log)
	log.Debug("Serviços inicializados.", nil)

	// 4. Handlers e roteador
	handlers := router.Handlers{
		User:      user.NewHandler(userSvc, log),
		Supplier:  supplier.NewHandler(supplierSvc, log),
		Material:  material.NewHandler(materialSvc, log),
		Stock:     stock.NewHandler(stockSvc, log),
		Request:   request.NewHandler(requestSvc, log),
		Dashboard: dashboard.NewHandler(dashboardSvc, log),
		Events:    hub.ServeWS,
	}

	auth := middleware.NewAuthMiddleware(tokenSvc, denylist, userRepo, log)
	handler := router.NewRouter(handlers, auth,
		middleware.RequestID,
		middleware.RequestLogger(log),
		middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log),
	)

	return &App{Handler: handler, Hub: hub}, nil
}
