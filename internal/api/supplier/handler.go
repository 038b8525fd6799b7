package supplier

import (
	"context"
	"net/http"
	"strconv"

	"estoqueti/internal/api/response"
	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// SupplierService define o contrato que o Handler espera da camada de Serviço.
type SupplierService interface {
	CreateSupplier(ctx context.Context, form domain.SupplierForm) (domain.Supplier, error)
	GetSupplierByID(ctx context.Context, id int) (domain.Supplier, error)
	GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, id int, form domain.SupplierForm) (domain.Supplier, error)
	ToggleSupplierStatus(ctx context.Context, id int) (domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int) error
}

// Handler agrupa todos os métodos de Handler de fornecedores.
type Handler struct {
	Service SupplierService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SupplierService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, apperror.NewValidationError("O ID do fornecedor deve ser um número positivo.")
	}
	return id, nil
}

// CreateSupplierHandler lida com a requisição POST /v1/suppliers.
// @Summary Cria um novo fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body domain.SupplierForm true "Dados do fornecedor"
// @Success 201 {object} domain.Supplier "Fornecedor criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /suppliers [post]
func (h *Handler) CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.SupplierForm
	if err := response.DecodeJSON(r, &form); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	created, err := h.Service.CreateSupplier(r.Context(), form)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetSupplierByIDHandler lida com a requisição GET /v1/suppliers/{id}.
// @Summary Obtém um fornecedor por ID
// @Tags suppliers
// @Produce json
// @Param id path int true "ID do fornecedor"
// @Success 200 {object} domain.Supplier "Fornecedor encontrado"
// @Failure 404 {object} domain.ErrorResponse "Fornecedor não encontrado"
// @Security ApiKeyAuth
// @Router /suppliers/{id} [get]
func (h *Handler) GetSupplierByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	supplier, err := h.Service.GetSupplierByID(r.Context(), id)
	response.Handle(w, r, h.Logger, supplier, err, http.StatusOK)
}

// GetAllSuppliersHandler lida com a requisição GET /v1/suppliers.
// @Summary Lista os fornecedores
// @Tags suppliers
// @Produce json
// @Success 200 {array} domain.Supplier
// @Security ApiKeyAuth
// @Router /suppliers [get]
func (h *Handler) GetAllSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Service.GetAllSuppliers(r.Context())
	response.Handle(w, r, h.Logger, suppliers, err, http.StatusOK)
}

// UpdateSupplierHandler lida com a requisição PUT /v1/suppliers/{id}.
// @Summary Atualiza um fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path int true "ID do fornecedor"
// @Param supplier body domain.SupplierForm true "Dados do fornecedor"
// @Success 200 {object} domain.Supplier
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Fornecedor não encontrado"
// @Security ApiKeyAuth
// @Router /suppliers/{id} [put]
func (h *Handler) UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	var form domain.SupplierForm
	if err := response.DecodeJSON(r, &form); err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	updated, err := h.Service.UpdateSupplier(r.Context(), id, form)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// ToggleSupplierStatusHandler lida com a requisição POST /v1/suppliers/{id}/toggle-status.
// @Summary Ativa ou inativa um fornecedor
// @Tags suppliers
// @Produce json
// @Param id path int true "ID do fornecedor"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} domain.ErrorResponse "Fornecedor não encontrado"
// @Security ApiKeyAuth
// @Router /suppliers/{id}/toggle-status [post]
func (h *Handler) ToggleSupplierStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	updated, err := h.Service.ToggleSupplierStatus(r.Context(), id)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteSupplierHandler lida com a requisição DELETE /v1/suppliers/{id}.
// @Summary Deleta um fornecedor
// @Tags suppliers
// @Param id path int true "ID do fornecedor"
// @Success 204 "Fornecedor deletado"
// @Failure 404 {object} domain.ErrorResponse "Fornecedor não encontrado"
// @Security ApiKeyAuth
// @Router /suppliers/{id} [delete]
func (h *Handler) DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}

	err = h.Service.DeleteSupplier(r.Context(), id)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}
