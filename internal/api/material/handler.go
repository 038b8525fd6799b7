package material

import (
	"context"
	"net/http"
	"strconv"

	"estoqueti/internal/api/response"
	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/logger"
)

// MaterialService define o contrato que o Handler espera da camada de Serviço.
type MaterialService interface {
	CreateMaterial(ctx context.Context, form domain.MaterialForm) (domain.MaterialView, error)
	UpdateMaterial(ctx context.Context, id string, form domain.MaterialForm) (domain.MaterialView, error)
	GetMaterial(ctx context.Context, id string) (domain.MaterialView, error)
	ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]domain.MaterialView, error)
	Matchcode(ctx context.Context, query string) ([]domain.MaterialView, error)
	DeleteMaterial(ctx context.Context, id string) error
}

// Handler agrupa os handlers do catálogo de materiais.
type Handler struct {
	Service MaterialService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MaterialService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListMaterialsHandler lida com a requisição GET /v1/materials.
// @Summary Lista o catálogo
// @Tags materials
// @Produce json
// @Param q query string false "Trecho da descrição ou do código DAT"
// @Param category query string false "Categoria"
// @Param low_stock query bool false "Apenas materiais com estoque baixo"
// @Success 200 {array} domain.MaterialView
// @Security ApiKeyAuth
// @Router /materials [get]
func (h *Handler) ListMaterialsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lowStock, _ := strconv.ParseBool(q.Get("low_stock"))
	filter := domain.MaterialFilter{
		Query:        q.Get("q"),
		Category:     q.Get("category"),
		LowStockOnly: lowStock,
	}

	materials, err := h.Service.ListMaterials(r.Context(), filter)
	response.Handle(w, r, h.Logger, materials, err, http.StatusOK)
}

// MatchcodeHandler lida com a requisição GET /v1/materials/matchcode.
// @Summary Sugestões de materiais
// @Description Busca por descrição, código DAT ou código SAP. Termos com menos de 2 caracteres retornam lista vazia.
// @Tags materials
// @Produce json
// @Param q query string true "Termo de busca"
// @Success 200 {array} domain.MaterialView
// @Security ApiKeyAuth
// @Router /materials/matchcode [get]
func (h *Handler) MatchcodeHandler(w http.ResponseWriter, r *http.Request) {
	materials, err := h.Service.Matchcode(r.Context(), r.URL.Query().Get("q"))
	response.Handle(w, r, h.Logger, materials, err, http.StatusOK)
}

// GetMaterialHandler lida com a requisição GET /v1/materials/{id}.
// @Summary Obtém um material por ID
// @Tags materials
// @Produce json
// @Param id path string true "ID do material"
// @Success 200 {object} domain.MaterialView
// @Failure 404 {object} domain.ErrorResponse "Material não encontrado"
// @Security ApiKeyAuth
// @Router /materials/{id} [get]
func (h *Handler) GetMaterialHandler(w http.ResponseWriter, r *http.Request) {
	material, err := h.Service.GetMaterial(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, material, err, http.StatusOK)
}

// CreateMaterialHandler lida com a requisição POST /v1/materials.
// @Summary Cadastra um material
// @Description O código DAT é gerado automaticamente e o estoque inicial é zero.
// @Tags materials
// @Accept json
// @Produce json
// @Param material body domain.MaterialForm true "Dados do material"
// @Success 201 {object} domain.MaterialView
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Security ApiKeyAuth
// @Router /materials [post]
func (h *Handler) CreateMaterialHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.MaterialForm
	if err := response.DecodeJSON(r, &form); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	created, err := h.Service.CreateMaterial(r.Context(), form)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// UpdateMaterialHandler lida com a requisição PUT /v1/materials/{id}.
// @Summary Atualiza um material
// @Tags materials
// @Accept json
// @Produce json
// @Param id path string true "ID do material"
// @Param material body domain.MaterialForm true "Dados do material"
// @Success 200 {object} domain.MaterialView
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 404 {object} domain.ErrorResponse "Material não encontrado"
// @Security ApiKeyAuth
// @Router /materials/{id} [put]
func (h *Handler) UpdateMaterialHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.MaterialForm
	if err := response.DecodeJSON(r, &form); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	updated, err := h.Service.UpdateMaterial(r.Context(), r.PathValue("id"), form)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteMaterialHandler lida com a requisição DELETE /v1/materials/{id}.
// @Summary Exclui um material sem saldo
// @Tags materials
// @Param id path string true "ID do material"
// @Success 204 "Material excluído"
// @Failure 404 {object} domain.ErrorResponse "Material não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Material com saldo em estoque"
// @Security ApiKeyAuth
// @Router /materials/{id} [delete]
func (h *Handler) DeleteMaterialHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteMaterial(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}
