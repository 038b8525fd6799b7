package materialrepo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/sequence"
)

const (
	codeDATPrefix = "DAT-"
	codeDATWidth  = 3
)

// MaterialRepository guarda o catálogo em memória e aplica os ajustes de estoque.
type MaterialRepository struct {
	mu        sync.RWMutex
	materials map[string]domain.Material
	order     []string
	logger    logger.Logger
}

// NewMaterialRepository cria o repositório, opcionalmente com uma carga inicial.
func NewMaterialRepository(log logger.Logger, seed ...domain.Material) *MaterialRepository {
	r := &MaterialRepository{materials: make(map[string]domain.Material), logger: log}
	for _, m := range seed {
		r.materials[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return r
}

// CreateMaterial insere um material, atribuindo ID e o próximo código DAT.
// O estoque inicial é sempre zero.
func (r *MaterialRepository) CreateMaterial(ctx context.Context, material domain.Material) (domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return domain.Material{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 1. Próximo código DAT a partir do maior existente
	codes := make([]string, 0, len(r.materials))
	for _, m := range r.materials {
		codes = append(codes, m.CodeDAT)
	}
	material.CodeDAT = sequence.Next(codeDATPrefix, codes, codeDATWidth)

	// 2. Identidade e estoque inicial
	material.ID = uuid.NewString()
	material.CurrentStock = 0

	r.materials[material.ID] = material
	r.order = append(r.order, material.ID)

	r.logger.Info("Material salvo no repositório.", map[string]interface{}{"id": material.ID, "code_dat": material.CodeDAT})
	return material, nil
}

// GetMaterialByID busca um material pelo ID.
func (r *MaterialRepository) GetMaterialByID(ctx context.Context, id string) (domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return domain.Material{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.materials[id]
	if !ok {
		return domain.Material{}, apperror.NewNotFoundError(fmt.Sprintf("Material %s não encontrado.", id))
	}
	return m, nil
}

// ListMaterials retorna os materiais na ordem de cadastro, aplicando o filtro.
func (r *MaterialRepository) ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	list := make([]domain.Material, 0, len(r.order))
	for _, id := range r.order {
		m := r.materials[id]
		if query != "" &&
			!strings.Contains(strings.ToLower(m.Description), query) &&
			!strings.Contains(strings.ToLower(m.CodeDAT), query) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(m.Category, filter.Category) {
			continue
		}
		if filter.LowStockOnly && !m.IsLowStock() {
			continue
		}
		list = append(list, m)
	}
	return list, nil
}

// UpdateMaterial atualiza os dados cadastrais. Estoque e código DAT não mudam por aqui.
func (r *MaterialRepository) UpdateMaterial(ctx context.Context, material domain.Material) (domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return domain.Material{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.materials[material.ID]
	if !ok {
		return domain.Material{}, apperror.NewNotFoundError(fmt.Sprintf("Material %s não encontrado.", material.ID))
	}
	material.CodeDAT = current.CodeDAT
	material.CurrentStock = current.CurrentStock
	r.materials[material.ID] = material

	r.logger.Info("Material atualizado no repositório.", map[string]interface{}{"id": material.ID})
	return material, nil
}

// DeleteMaterial remove um material do catálogo.
func (r *MaterialRepository) DeleteMaterial(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.materials[id]; !ok {
		return apperror.NewNotFoundError(fmt.Sprintf("Material %s não encontrado.", id))
	}
	delete(r.materials, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.Info("Material removido do repositório.", map[string]interface{}{"id": id})
	return nil
}

// AdjustStock soma delta (positivo ou negativo) ao estoque atual. Não há limite inferior.
func (r *MaterialRepository) AdjustStock(ctx context.Context, id string, delta int) (domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return domain.Material{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.materials[id]
	if !ok {
		return domain.Material{}, apperror.NewNotFoundError(fmt.Sprintf("Material %s não encontrado.", id))
	}
	previous := m.CurrentStock
	m.CurrentStock += delta
	r.materials[id] = m

	r.logger.Debug("Estoque ajustado no repositório.", map[string]interface{}{
		"material_id":    id,
		"previous_stock": previous,
		"delta":          delta,
		"current_stock":  m.CurrentStock,
	})
	return m, nil
}
