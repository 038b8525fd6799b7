// Package materialservice mantém o catálogo de materiais e a busca por matchcode.
package materialservice

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// MaterialRepository define o contrato de persistência do catálogo.
type MaterialRepository interface {
	CreateMaterial(ctx context.Context, material domain.Material) (domain.Material, error)
	GetMaterialByID(ctx context.Context, id string) (domain.Material, error)
	ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]domain.Material, error)
	UpdateMaterial(ctx context.Context, material domain.Material) (domain.Material, error)
	DeleteMaterial(ctx context.Context, id string) error
}

// SupplierLookup confere se o fornecedor informado existe.
type SupplierLookup interface {
	GetSupplierByID(ctx context.Context, id int) (domain.Supplier, error)
}

// Validator valida formulários com tags `validate`.
type Validator interface {
	Struct(s interface{}) error
}

// Service implementa o catálogo de materiais.
type Service struct {
	repo      MaterialRepository
	suppliers SupplierLookup
	validator Validator
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Materiais.
func NewService(repo MaterialRepository, suppliers SupplierLookup, v Validator, logger logger.Logger) *Service {
	return &Service{repo: repo, suppliers: suppliers, validator: v, logger: logger}
}

// CreateMaterial cadastra um material com estoque zero. O código DAT é atribuído pelo repositório.
func (s *Service) CreateMaterial(ctx context.Context, form domain.MaterialForm) (domain.MaterialView, error) {
	s.logger.Debug("Iniciando criação de material no serviço.", map[string]interface{}{"description": form.Description})

	form = normalize(form)
	if err := s.validator.Struct(form); err != nil {
		s.logger.Warn("Falha na validação do material.", map[string]interface{}{"error": err.Error()})
		return domain.MaterialView{}, err
	}
	if err := s.checkSupplier(ctx, form.SupplierID); err != nil {
		return domain.MaterialView{}, err
	}

	created, err := s.repo.CreateMaterial(ctx, domain.Material{
		CodeSAP:     form.CodeSAP,
		Description: form.Description,
		Unit:        form.Unit,
		SupplierID:  form.SupplierID,
		MinStock:    form.MinStock,
		Category:    form.Category,
	})
	if err != nil {
		s.logger.Error("Falha ao criar material no repositório.", err)
		return domain.MaterialView{}, repoError(err, "Falha interna ao criar material.")
	}

	s.logger.Info("Material criado com sucesso.", map[string]interface{}{"id": created.ID, "code_dat": created.CodeDAT})
	return domain.NewMaterialView(created), nil
}

// UpdateMaterial altera o cadastro. Código DAT e saldo não mudam por aqui.
func (s *Service) UpdateMaterial(ctx context.Context, id string, form domain.MaterialForm) (domain.MaterialView, error) {
	form = normalize(form)
	if err := s.validator.Struct(form); err != nil {
		return domain.MaterialView{}, err
	}

	material, err := s.repo.GetMaterialByID(ctx, id)
	if err != nil {
		return domain.MaterialView{}, repoError(err, "Falha interna ao buscar material.")
	}
	if form.SupplierID != material.SupplierID {
		if err := s.checkSupplier(ctx, form.SupplierID); err != nil {
			return domain.MaterialView{}, err
		}
	}

	material.CodeSAP = form.CodeSAP
	material.Description = form.Description
	material.Unit = form.Unit
	material.SupplierID = form.SupplierID
	material.MinStock = form.MinStock
	material.Category = form.Category

	updated, err := s.repo.UpdateMaterial(ctx, material)
	if err != nil {
		s.logger.Error("Falha ao atualizar material no repositório.", err)
		return domain.MaterialView{}, repoError(err, "Falha interna ao atualizar material.")
	}

	s.logger.Info("Material atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return domain.NewMaterialView(updated), nil
}

// GetMaterial retorna um material pelo ID.
func (s *Service) GetMaterial(ctx context.Context, id string) (domain.MaterialView, error) {
	material, err := s.repo.GetMaterialByID(ctx, id)
	if err != nil {
		return domain.MaterialView{}, repoError(err, "Falha interna ao buscar material.")
	}
	return domain.NewMaterialView(material), nil
}

// ListMaterials retorna o catálogo filtrado.
func (s *Service) ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]domain.MaterialView, error) {
	materials, err := s.repo.ListMaterials(ctx, filter)
	if err != nil {
		s.logger.Error("Falha ao listar materiais.", err)
		return nil, repoError(err, "Falha interna ao listar materiais.")
	}
	return views(materials), nil
}

// Matchcode sugere materiais cuja descrição, código DAT ou código SAP contenham o termo.
// Termos com menos de dois caracteres não retornam sugestões.
func (s *Service) Matchcode(ctx context.Context, query string) ([]domain.MaterialView, error) {
	if utf8.RuneCountInString(query) <= 1 {
		return []domain.MaterialView{}, nil
	}

	materials, err := s.repo.ListMaterials(ctx, domain.MaterialFilter{})
	if err != nil {
		s.logger.Error("Falha ao listar materiais para matchcode.", err)
		return nil, repoError(err, "Falha interna ao buscar materiais.")
	}

	term := strings.ToLower(query)
	matched := make([]domain.Material, 0)
	for _, m := range materials {
		if strings.Contains(strings.ToLower(m.Description), term) ||
			strings.Contains(strings.ToLower(m.CodeDAT), term) ||
			strings.Contains(strings.ToLower(m.CodeSAP), term) {
			matched = append(matched, m)
		}
	}
	return views(matched), nil
}

// DeleteMaterial remove um material sem saldo em estoque.
func (s *Service) DeleteMaterial(ctx context.Context, id string) error {
	material, err := s.repo.GetMaterialByID(ctx, id)
	if err != nil {
		return repoError(err, "Falha interna ao buscar material.")
	}
	if material.CurrentStock != 0 {
		s.logger.Warn("Exclusão de material com saldo recusada.", map[string]interface{}{"id": id, "current_stock": material.CurrentStock})
		return apperror.NewConflictError(fmt.Sprintf("O material %s ainda possui saldo (%d) e não pode ser excluído.", material.CodeDAT, material.CurrentStock))
	}

	if err := s.repo.DeleteMaterial(ctx, id); err != nil {
		s.logger.Error("Falha ao excluir material.", err)
		return repoError(err, "Falha interna ao excluir material.")
	}
	s.logger.Info("Material excluído.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) checkSupplier(ctx context.Context, id int) error {
	if _, err := s.suppliers.GetSupplierByID(ctx, id); err != nil {
		if apperror.Is(err, "NOT_FOUND") {
			return apperror.NewValidationError(fmt.Sprintf("Fornecedor %d não encontrado.", id))
		}
		return repoError(err, "Falha interna ao buscar fornecedor.")
	}
	return nil
}

func views(materials []domain.Material) []domain.MaterialView {
	out := make([]domain.MaterialView, 0, len(materials))
	for _, m := range materials {
		out = append(out, domain.NewMaterialView(m))
	}
	return out
}

func normalize(form domain.MaterialForm) domain.MaterialForm {
	form.CodeSAP = strings.TrimSpace(form.CodeSAP)
	form.Description = strings.TrimSpace(form.Description)
	form.Category = strings.TrimSpace(form.Category)
	return form
}

func repoError(err error, msg string) error {
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
