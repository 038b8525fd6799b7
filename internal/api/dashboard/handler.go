package dashboard

import (
	"context"
	"net/http"

	"estoqueti/internal/api/response"
	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/logger"
)

type DashboardService interface {
	Summary(ctx context.Context) (domain.DashboardSummary, error)
}

type Handler struct {
	Service DashboardService
	Logger  logger.Logger
}

func NewHandler(svc DashboardService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// SummaryHandler lida com a requisição GET /v1/dashboard.
// @Summary Indicadores do painel
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	response.Handle(w, r, h.Logger, summary, err, http.StatusOK)
}
