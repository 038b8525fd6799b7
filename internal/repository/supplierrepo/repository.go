package supplierrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// SupplierRepository guarda os fornecedores em memória. IDs são inteiros sequenciais.
type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[int]domain.Supplier
	logger    logger.Logger
}

// NewSupplierRepository cria o repositório, opcionalmente com uma carga inicial.
func NewSupplierRepository(log logger.Logger, seed ...domain.Supplier) *SupplierRepository {
	r := &SupplierRepository{suppliers: make(map[int]domain.Supplier), logger: log}
	for _, s := range seed {
		r.suppliers[s.ID] = s
	}
	return r
}

// CreateSupplier insere um fornecedor com o próximo ID disponível.
func (r *SupplierRepository) CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return domain.Supplier{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := 0
	for id := range r.suppliers {
		if id > next {
			next = id
		}
	}
	supplier.ID = next + 1
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = supplier.CreatedAt
	r.suppliers[supplier.ID] = supplier

	r.logger.Info("Fornecedor salvo no repositório.", map[string]interface{}{"id": supplier.ID, "name": supplier.Name})
	return supplier, nil
}

// GetSupplierByID busca um fornecedor pelo ID.
func (r *SupplierRepository) GetSupplierByID(ctx context.Context, id int) (domain.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return domain.Supplier{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.suppliers[id]
	if !ok {
		return domain.Supplier{}, apperror.NewNotFoundError(fmt.Sprintf("Fornecedor %d não encontrado.", id))
	}
	return s, nil
}

// GetAllSuppliers retorna todos os fornecedores ordenados por ID.
func (r *SupplierRepository) GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// UpdateSupplier substitui os dados de um fornecedor existente.
func (r *SupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return domain.Supplier{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.suppliers[supplier.ID]
	if !ok {
		return domain.Supplier{}, apperror.NewNotFoundError(fmt.Sprintf("Fornecedor %d não encontrado.", supplier.ID))
	}
	supplier.CreatedAt = current.CreatedAt
	supplier.UpdatedAt = time.Now()
	r.suppliers[supplier.ID] = supplier

	r.logger.Info("Fornecedor atualizado no repositório.", map[string]interface{}{"id": supplier.ID})
	return supplier, nil
}

// DeleteSupplier remove um fornecedor (exclusão definitiva).
func (r *SupplierRepository) DeleteSupplier(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.suppliers[id]; !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("Fornecedor %d não encontrado.", id))
	}
	delete(r.suppliers, id)

	r.logger.Info("Fornecedor removido do repositório.", map[string]interface{}{"id": id})
	return nil
}
