package request

import (
	"context"
	"net/http"

	"estoqueti/internal/api/response"
	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/logger"
)

// RequestService define o contrato que o Handler espera do gerenciador de solicitações.
type RequestService interface {
	Submit(ctx context.Context, actor domain.Actor, form domain.RequestForm) (domain.MaterialRequest, error)
	Attend(ctx context.Context, actor domain.Actor, id string, form domain.ActionForm) (domain.MaterialRequest, error)
	Complete(ctx context.Context, actor domain.Actor, id string, form domain.CompletionForm) (domain.MaterialRequest, error)
	RequestCorrection(ctx context.Context, actor domain.Actor, id string, form domain.ActionForm) (domain.MaterialRequest, error)
	Reject(ctx context.Context, actor domain.Actor, id string, form domain.ActionForm) (domain.MaterialRequest, error)
	SubmitCorrection(ctx context.Context, actor domain.Actor, id string, form domain.RequestForm) (domain.MaterialRequest, error)
	Cancel(ctx context.Context, actor domain.Actor, id string) (domain.MaterialRequest, error)
	GetRequest(ctx context.Context, actor domain.Actor, id string) (domain.MaterialRequest, error)
	ListRequests(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.MaterialRequest, error)
}

// Handler agrupa os handlers de solicitações de material.
type Handler struct {
	Service RequestService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler de solicitações.
func NewHandler(svc RequestService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// withActor extrai o usuário autenticado e decodifica o corpo (quando form não é nil)
// antes de chamar fn.
func (h *Handler) withActor(w http.ResponseWriter, r *http.Request, form interface{}, successStatus int,
	fn func(actor domain.Actor) (interface{}, error)) {
	actor, err := response.Actor(r)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, 0)
		return
	}
	if form != nil {
		if err := response.DecodeJSON(r, form); err != nil {
			response.Handle(w, r, h.Logger, nil, err, 0)
			return
		}
	}

	data, err := fn(actor)
	response.Handle(w, r, h.Logger, data, err, successStatus)
}

// SubmitHandler lida com a requisição POST /v1/requests.
// @Summary Abre uma solicitação de material
// @Tags requests
// @Accept json
// @Produce json
// @Param request body domain.RequestForm true "Justificativa, local e itens"
// @Success 201 {object} domain.MaterialRequest
// @Failure 400 {object} domain.ErrorResponse "Preencha todos os campos"
// @Security ApiKeyAuth
// @Router /requests [post]
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.RequestForm
	h.withActor(w, r, &form, http.StatusCreated, func(actor domain.Actor) (interface{}, error) {
		return h.Service.Submit(r.Context(), actor, form)
	})
}

// ListHandler lida com a requisição GET /v1/requests.
// @Summary Lista solicitações
// @Description Administradores veem todas; solicitantes apenas as próprias. Ordenadas do ID mais novo para o mais antigo.
// @Tags requests
// @Produce json
// @Param id query string false "Trecho do ID"
// @Param status query string false "Status"
// @Success 200 {array} domain.MaterialRequest
// @Security ApiKeyAuth
// @Router /requests [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RequestFilter{
		ID:     q.Get("id"),
		Status: domain.RequestStatus(q.Get("status")),
	}
	h.withActor(w, r, nil, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.ListRequests(r.Context(), actor, filter)
	})
}

// GetHandler lida com a requisição GET /v1/requests/{id}.
// @Summary Obtém uma solicitação
// @Tags requests
// @Produce json
// @Param id path string true "ID da solicitação (ID_#####)"
// @Success 200 {object} domain.MaterialRequest
// @Failure 403 {object} domain.ErrorResponse "Solicitação de outro usuário"
// @Failure 404 {object} domain.ErrorResponse "Solicitação não encontrada"
// @Security ApiKeyAuth
// @Router /requests/{id} [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	h.withActor(w, r, nil, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.GetRequest(r.Context(), actor, r.PathValue("id"))
	})
}

// SubmitCorrectionHandler lida com a requisição PUT /v1/requests/{id}.
// @Summary Reenvia uma solicitação corrigida
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param request body domain.RequestForm true "Dados corrigidos"
// @Success 200 {object} domain.MaterialRequest
// @Failure 403 {object} domain.ErrorResponse "Apenas o solicitante"
// @Failure 409 {object} domain.ErrorResponse "Solicitação não aguarda correção"
// @Security ApiKeyAuth
// @Router /requests/{id} [put]
func (h *Handler) SubmitCorrectionHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.RequestForm
	h.withActor(w, r, &form, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.SubmitCorrection(r.Context(), actor, r.PathValue("id"), form)
	})
}

// CancelHandler lida com a requisição POST /v1/requests/{id}/cancel.
// @Summary Cancela uma solicitação que aguarda correção
// @Tags requests
// @Produce json
// @Param id path string true "ID da solicitação"
// @Success 200 {object} domain.MaterialRequest
// @Failure 403 {object} domain.ErrorResponse "Apenas o solicitante"
// @Failure 409 {object} domain.ErrorResponse "Transição não permitida"
// @Security ApiKeyAuth
// @Router /requests/{id}/cancel [post]
func (h *Handler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	h.withActor(w, r, nil, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.Cancel(r.Context(), actor, r.PathValue("id"))
	})
}

// AttendHandler lida com a requisição POST /v1/requests/{id}/attend.
// @Summary Inicia o atendimento
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param action body domain.ActionForm true "Observação e anexos"
// @Success 200 {object} domain.MaterialRequest
// @Failure 409 {object} domain.ErrorResponse "Transição não permitida"
// @Security ApiKeyAuth
// @Router /requests/{id}/attend [post]
func (h *Handler) AttendHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.ActionForm
	h.withActor(w, r, &form, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.Attend(r.Context(), actor, r.PathValue("id"), form)
	})
}

// CompleteHandler lida com a requisição POST /v1/requests/{id}/complete.
// @Summary Conclui o atendimento e baixa o estoque
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param completion body domain.CompletionForm true "Recebedor e observação"
// @Success 200 {object} domain.MaterialRequest
// @Failure 409 {object} domain.ErrorResponse "Transição não permitida ou estoque insuficiente"
// @Security ApiKeyAuth
// @Router /requests/{id}/complete [post]
func (h *Handler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.CompletionForm
	h.withActor(w, r, &form, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.Complete(r.Context(), actor, r.PathValue("id"), form)
	})
}

// RequestCorrectionHandler lida com a requisição POST /v1/requests/{id}/correction.
// @Summary Devolve a solicitação para correção
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param action body domain.ActionForm true "Observação e anexos"
// @Success 200 {object} domain.MaterialRequest
// @Failure 409 {object} domain.ErrorResponse "Transição não permitida"
// @Security ApiKeyAuth
// @Router /requests/{id}/correction [post]
func (h *Handler) RequestCorrectionHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.ActionForm
	h.withActor(w, r, &form, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.RequestCorrection(r.Context(), actor, r.PathValue("id"), form)
	})
}

// RejectHandler lida com a requisição POST /v1/requests/{id}/reject.
// @Summary Rejeita a solicitação
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param action body domain.ActionForm true "Observação e anexos"
// @Success 200 {object} domain.MaterialRequest
// @Failure 409 {object} domain.ErrorResponse "Transição não permitida"
// @Security ApiKeyAuth
// @Router /requests/{id}/reject [post]
func (h *Handler) RejectHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.ActionForm
	h.withActor(w, r, &form, http.StatusOK, func(actor domain.Actor) (interface{}, error) {
		return h.Service.Reject(r.Context(), actor, r.PathValue("id"), form)
	})
}
