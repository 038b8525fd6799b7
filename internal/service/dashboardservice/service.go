package dashboardservice

import (
	"context"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

type MaterialLister interface {
	ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]domain.Material, error)
}

type RequestLister interface {
	ListRequests(ctx context.Context) ([]domain.MaterialRequest, error)
}

type MovementLister interface {
	ListMovements(ctx context.Context) ([]domain.Movement, error)
}

// Service calcula os indicadores do painel do administrador.
type Service struct {
	materials MaterialLister
	requests  RequestLister
	movements MovementLister
	logger    logger.Logger
}

func NewService(materials MaterialLister, requests RequestLister, movements MovementLister, logger logger.Logger) *Service {
	return &Service{materials: materials, requests: requests, movements: movements, logger: logger}
}

// Summary monta o resumo: catálogo, estoque baixo, solicitações em aberto e movimentações.
func (s *Service) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	materials, err := s.materials.ListMaterials(ctx, domain.MaterialFilter{})
	if err != nil {
		s.logger.Error("Falha ao listar materiais para o painel.", err)
		return domain.DashboardSummary{}, apperror.NewInternalError("Falha interna ao montar o painel.", err)
	}
	requests, err := s.requests.ListRequests(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar solicitações para o painel.", err)
		return domain.DashboardSummary{}, apperror.NewInternalError("Falha interna ao montar o painel.", err)
	}
	movements, err := s.movements.ListMovements(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar movimentações para o painel.", err)
		return domain.DashboardSummary{}, apperror.NewInternalError("Falha interna ao montar o painel.", err)
	}

	summary := domain.DashboardSummary{
		TotalMaterials:  len(materials),
		LowStock:        []domain.Material{},
		MovementsCount:  len(movements),
		StockByCategory: make(map[string]int),
	}
	for _, m := range materials {
		if m.IsLowStock() {
			summary.LowStock = append(summary.LowStock, m)
		}
		summary.StockByCategory[m.Category] += m.CurrentStock
	}
	summary.LowStockCount = len(summary.LowStock)
	for _, r := range requests {
		if r.Status.IsOpen() {
			summary.OpenRequests++
		}
	}

	s.logger.Debug("Painel calculado.", map[string]interface{}{"low_stock": summary.LowStockCount, "open_requests": summary.OpenRequests})
	return summary, nil
}
