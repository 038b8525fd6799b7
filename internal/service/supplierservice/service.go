package supplierservice

import (
	"context"
	"strings"
	"time"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// SupplierRepository define o contrato que o Serviço de Fornecedores espera da camada de Persistência.
type SupplierRepository interface {
	CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	GetSupplierByID(ctx context.Context, id int) (domain.Supplier, error)
	GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int) error
}

// Validator valida formulários com tags `validate`.
type Validator interface {
	Struct(s interface{}) error
}

// Service implementa o cadastro de fornecedores.
type Service struct {
	repo      SupplierRepository
	validator Validator
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Fornecedores.
func NewService(repo SupplierRepository, v Validator, logger logger.Logger) *Service {
	return &Service{repo: repo, validator: v, logger: logger}
}

// CreateSupplier cadastra um fornecedor ativo.
func (s *Service) CreateSupplier(ctx context.Context, form domain.SupplierForm) (domain.Supplier, error) {
	s.logger.Debug("Iniciando criação de fornecedor no serviço.", map[string]interface{}{"name": form.Name})

	form = normalize(form)
	if err := s.validator.Struct(form); err != nil {
		s.logger.Warn("Falha na validação do fornecedor.", map[string]interface{}{"name": form.Name, "error": err.Error()})
		return domain.Supplier{}, err
	}

	now := time.Now()
	created, err := s.repo.CreateSupplier(ctx, domain.Supplier{
		Name:      form.Name,
		CNPJ:      form.CNPJ,
		Phone:     form.Phone,
		Email:     form.Email,
		Address:   form.Address,
		Status:    domain.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error("Falha ao criar fornecedor no repositório.", err)
		return domain.Supplier{}, repoError(err, "Falha interna ao criar fornecedor.")
	}

	s.logger.Info("Fornecedor criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetSupplierByID busca um fornecedor pelo ID.
func (s *Service) GetSupplierByID(ctx context.Context, id int) (domain.Supplier, error) {
	if err := validateID(id); err != nil {
		s.logger.Warn("ID de fornecedor inválido fornecido.", map[string]interface{}{"id": id})
		return domain.Supplier{}, err
	}

	supplier, err := s.repo.GetSupplierByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, repoError(err, "Falha interna ao buscar fornecedor.")
	}
	return supplier, nil
}

// GetAllSuppliers lista todos os fornecedores por ID.
func (s *Service) GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.repo.GetAllSuppliers(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar fornecedores no repositório.", err)
		return nil, repoError(err, "Falha interna ao buscar fornecedores.")
	}
	s.logger.Debug("Fornecedores listados.", map[string]interface{}{"count": len(suppliers)})
	return suppliers, nil
}

// UpdateSupplier atualiza os dados cadastrais, preservando o status.
func (s *Service) UpdateSupplier(ctx context.Context, id int, form domain.SupplierForm) (domain.Supplier, error) {
	if err := validateID(id); err != nil {
		return domain.Supplier{}, err
	}
	form = normalize(form)
	if err := s.validator.Struct(form); err != nil {
		return domain.Supplier{}, err
	}

	supplier, err := s.repo.GetSupplierByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, repoError(err, "Falha interna ao buscar fornecedor.")
	}

	supplier.Name = form.Name
	supplier.CNPJ = form.CNPJ
	supplier.Phone = form.Phone
	supplier.Email = form.Email
	supplier.Address = form.Address
	supplier.UpdatedAt = time.Now()

	updated, err := s.repo.UpdateSupplier(ctx, supplier)
	if err != nil {
		s.logger.Error("Falha ao atualizar fornecedor no repositório.", err)
		return domain.Supplier{}, repoError(err, "Falha interna ao atualizar fornecedor.")
	}

	s.logger.Info("Fornecedor atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// ToggleSupplierStatus alterna o fornecedor entre ATIVO e INATIVO.
func (s *Service) ToggleSupplierStatus(ctx context.Context, id int) (domain.Supplier, error) {
	supplier, err := s.GetSupplierByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, err
	}

	supplier.Status = supplier.Status.Toggle()
	supplier.UpdatedAt = time.Now()
	updated, err := s.repo.UpdateSupplier(ctx, supplier)
	if err != nil {
		s.logger.Error("Falha ao alterar status do fornecedor.", err)
		return domain.Supplier{}, repoError(err, "Falha interna ao atualizar fornecedor.")
	}

	s.logger.Info("Status do fornecedor alterado.", map[string]interface{}{"id": id, "status": updated.Status})
	return updated, nil
}

// DeleteSupplier remove um fornecedor.
func (s *Service) DeleteSupplier(ctx context.Context, id int) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.DeleteSupplier(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar fornecedor no repositório.", err)
		return repoError(err, "Falha interna ao deletar fornecedor.")
	}
	s.logger.Info("Fornecedor deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func validateID(id int) error {
	if id <= 0 {
		return apperror.NewValidationError("O ID do fornecedor deve ser um número positivo.")
	}
	return nil
}

func normalize(form domain.SupplierForm) domain.SupplierForm {
	form.Name = strings.TrimSpace(form.Name)
	form.CNPJ = strings.TrimSpace(form.CNPJ)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)
	form.Address = strings.TrimSpace(form.Address)
	return form
}

func repoError(err error, msg string) error {
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
