package stock

import (
	"context"
	"net/http"

	"estoqueti/internal/api/response"
	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/logger"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	RegisterEntry(ctx context.Context, actor domain.Actor, form domain.StockEntryForm) (domain.Movement, error)
	ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.MovementView, error)
	ExportCSV(ctx context.Context, filter domain.MovementFilter) ([]byte, error)
}

// Handler agrupa os handlers de entradas e do relatório de movimentações.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler de Estoque.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func movementFilter(r *http.Request) domain.MovementFilter {
	q := r.URL.Query()
	return domain.MovementFilter{
		Date:     q.Get("date"),
		Type:     domain.MovementType(q.Get("type")),
		Material: q.Get("material"),
	}
}

// RegisterEntryHandler lida com a requisição POST /v1/stock/entries.
// @Summary Registra entrada ou devolução
// @Description Soma a quantidade ao saldo do material e grava a movimentação.
// @Tags stock
// @Accept json
// @Produce json
// @Param entry body domain.StockEntryForm true "Dados da entrada"
// @Success 201 {object} domain.Movement "Movimentação registrada"
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 404 {object} domain.ErrorResponse "Material não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /stock/entries [post]
func (h *Handler) RegisterEntryHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := response.Actor(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	var form domain.StockEntryForm
	if err := response.DecodeJSON(r, &form); err != nil {
		h.Logger.Warn("Falha ao decodificar entrada de estoque.", map[string]interface{}{"path": r.URL.Path})
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	movement, err := h.Service.RegisterEntry(r.Context(), actor, form)
	response.Handle(w, r, h.Logger, movement, err, http.StatusCreated)
}

// ListMovementsHandler lida com a requisição GET /v1/movements.
// @Summary Lista movimentações
// @Tags stock
// @Produce json
// @Param date query string false "Data (YYYY-MM-DD)"
// @Param type query string false "ENTRADA, SAIDA ou DEVOLUCAO"
// @Param material query string false "Trecho da descrição do material"
// @Success 200 {array} domain.MovementView
// @Security ApiKeyAuth
// @Router /movements [get]
func (h *Handler) ListMovementsHandler(w http.ResponseWriter, r *http.Request) {
	movements, err := h.Service.ListMovements(r.Context(), movementFilter(r))
	response.Handle(w, r, h.Logger, movements, err, http.StatusOK)
}

// ExportMovementsHandler lida com a requisição GET /v1/movements/export.
// @Summary Exporta movimentações em CSV
// @Tags stock
// @Produce text/csv
// @Param date query string false "Data (YYYY-MM-DD)"
// @Param type query string false "ENTRADA, SAIDA ou DEVOLUCAO"
// @Param material query string false "Trecho da descrição do material"
// @Success 200 {string} string "Arquivo movimentacoes.csv"
// @Security ApiKeyAuth
// @Router /movements/export [get]
func (h *Handler) ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportCSV(r.Context(), movementFilter(r))
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="movimentacoes.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("Falha ao enviar CSV.", err)
	}
}
