package requestrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/sequence"
)

const (
	requestIDPrefix = "ID_"
	requestIDWidth  = 5
)

// RequestRepository guarda as solicitações em memória. Leituras e escritas trabalham com cópias.
type RequestRepository struct {
	mu       sync.RWMutex
	requests map[string]domain.MaterialRequest
	logger   logger.Logger
}

// NewRequestRepository cria o repositório, opcionalmente com uma carga inicial.
func NewRequestRepository(log logger.Logger, seed ...domain.MaterialRequest) *RequestRepository {
	r := &RequestRepository{requests: make(map[string]domain.MaterialRequest), logger: log}
	for _, req := range seed {
		r.requests[req.ID] = req.Clone()
	}
	return r
}

// CreateRequest grava uma nova solicitação com o próximo ID sequencial (ID_#####).
func (r *RequestRepository) CreateRequest(ctx context.Context, req domain.MaterialRequest) (domain.MaterialRequest, error) {
	if err := ctx.Err(); err != nil {
		return domain.MaterialRequest{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.requests))
	for id := range r.requests {
		ids = append(ids, id)
	}
	req.ID = sequence.Next(requestIDPrefix, ids, requestIDWidth)
	r.requests[req.ID] = req.Clone()

	r.logger.Info("Solicitação salva no repositório.", map[string]interface{}{"id": req.ID, "requester_id": req.RequesterID})
	return req.Clone(), nil
}

// GetRequestByID busca uma solicitação pelo ID.
func (r *RequestRepository) GetRequestByID(ctx context.Context, id string) (domain.MaterialRequest, error) {
	if err := ctx.Err(); err != nil {
		return domain.MaterialRequest{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return domain.MaterialRequest{}, apperror.NewNotFoundError(fmt.Sprintf("Solicitação %s não encontrada.", id))
	}
	return req.Clone(), nil
}

// ListRequests retorna todas as solicitações, da mais recente (maior ID) para a mais antiga.
func (r *RequestRepository) ListRequests(ctx context.Context) ([]domain.MaterialRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.MaterialRequest, 0, len(r.requests))
	for _, req := range r.requests {
		list = append(list, req.Clone())
	}
	sort.Slice(list, func(i, j int) bool {
		return sequence.Numeric(list[i].ID) > sequence.Numeric(list[j].ID)
	})
	return list, nil
}

// UpdateRequest substitui uma solicitação existente.
func (r *RequestRepository) UpdateRequest(ctx context.Context, req domain.MaterialRequest) (domain.MaterialRequest, error) {
	if err := ctx.Err(); err != nil {
		return domain.MaterialRequest{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID]; !ok {
		return domain.MaterialRequest{}, apperror.NewNotFoundError(fmt.Sprintf("Solicitação %s não encontrada.", req.ID))
	}
	r.requests[req.ID] = req.Clone()

	r.logger.Debug("Solicitação atualizada no repositório.", map[string]interface{}{"id": req.ID, "status": req.Status})
	return req.Clone(), nil
}
