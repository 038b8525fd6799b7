package supplierservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/validation"
	"estoqueti/internal/service/supplierservice"
)

// MockSupplierRepository é uma implementação mock da interface SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	args := m.Called(ctx, supplier)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetSupplierByID(ctx context.Context, id int) (domain.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	args := m.Called(ctx, supplier)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) DeleteSupplier(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newService() (*supplierservice.Service, *MockSupplierRepository) {
	mockRepo := new(MockSupplierRepository)
	return supplierservice.NewService(mockRepo, validation.New(), logger.NewNop()), mockRepo
}

// --- Testes para CreateSupplier ---

func TestCreateSupplier_Success(t *testing.T) {
	svc, mockRepo := newService()
	ctx := context.Background()

	mockRepo.On("CreateSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.Name == "Intelbras" && s.Status == domain.StatusAtivo
	})).Return(domain.Supplier{ID: 5, Name: "Intelbras", Status: domain.StatusAtivo}, nil)

	result, err := svc.CreateSupplier(ctx, domain.SupplierForm{Name: "  Intelbras ", CNPJ: "44.444.444/0001-44"})

	assert.NoError(t, err)
	assert.Equal(t, 5, result.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreateSupplier_ValidationError(t *testing.T) {
	svc, mockRepo := newService()

	_, err := svc.CreateSupplier(context.Background(), domain.SupplierForm{Name: "Intelbras"})
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "O CNPJ é obrigatório.")

	_, err = svc.CreateSupplier(context.Background(), domain.SupplierForm{Name: "Intelbras", CNPJ: "1", Email: "sem-arroba"})
	assert.IsType(t, &apperror.ValidationError{}, err)

	mockRepo.AssertNotCalled(t, "CreateSupplier", mock.Anything, mock.Anything)
}

func TestCreateSupplier_RepositoryError(t *testing.T) {
	svc, mockRepo := newService()
	ctx := context.Background()

	mockRepo.On("CreateSupplier", ctx, mock.AnythingOfType("domain.Supplier")).Return(domain.Supplier{}, errors.New("db down"))

	_, err := svc.CreateSupplier(ctx, domain.SupplierForm{Name: "X", CNPJ: "1"})

	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao criar fornecedor")
}

// --- Testes para GetSupplierByID ---

func TestGetSupplierByID_InvalidID(t *testing.T) {
	svc, mockRepo := newService()

	_, err := svc.GetSupplierByID(context.Background(), 0)

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "GetSupplierByID", mock.Anything, mock.Anything)
}

func TestGetSupplierByID_NotFound(t *testing.T) {
	svc, mockRepo := newService()
	ctx := context.Background()

	mockRepo.On("GetSupplierByID", ctx, 9).Return(domain.Supplier{}, apperror.NewNotFoundError("Fornecedor 9 não encontrado."))

	_, err := svc.GetSupplierByID(ctx, 9)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestGetAllSuppliers(t *testing.T) {
	svc, mockRepo := newService()
	ctx := context.Background()
	expected := []domain.Supplier{{ID: 1, Name: "Dell"}, {ID: 2, Name: "Furukawa"}}

	mockRepo.On("GetAllSuppliers", ctx).Return(expected, nil)

	result, err := svc.GetAllSuppliers(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

// --- Testes para UpdateSupplier e ToggleSupplierStatus ---

func TestUpdateSupplier_KeepsStatus(t *testing.T) {
	svc, mockRepo := newService()
	ctx := context.Background()

	mockRepo.On("GetSupplierByID", ctx, 2).Return(domain.Supplier{ID: 2, Name: "Furukawa", CNPJ: "1", Status: domain.StatusInativo}, nil)
	mockRepo.On("UpdateSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.ID == 2 && s.Name == "Furukawa Electric LatAm" && s.Status == domain.StatusInativo
	})).Return(domain.Supplier{ID: 2, Name: "Furukawa Electric LatAm", Status: domain.StatusInativo}, nil)

	result, err := svc.UpdateSupplier(ctx, 2, domain.SupplierForm{Name: "Furukawa Electric LatAm", CNPJ: "1"})

	assert.NoError(t, err)
	assert.Equal(t, "Furukawa Electric LatAm", result.Name)
	mockRepo.AssertExpectations(t)
}

func TestToggleSupplierStatus(t *testing.T) {
	svc, mockRepo := newService()
	ctx := context.Background()

	mockRepo.On("GetSupplierByID", ctx, 1).Return(domain.Supplier{ID: 1, Status: domain.StatusAtivo}, nil)
	mockRepo.On("UpdateSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.Status == domain.StatusInativo
	})).Return(domain.Supplier{ID: 1, Status: domain.StatusInativo}, nil)

	result, err := svc.ToggleSupplierStatus(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusInativo, result.Status)
}

// --- Testes para DeleteSupplier ---

func TestDeleteSupplier(t *testing.T) {
	svc, mockRepo := newService()
	ctx := context.Background()

	mockRepo.On("DeleteSupplier", ctx, 3).Return(nil)
	mockRepo.On("DeleteSupplier", ctx, 8).Return(apperror.NewNotFoundError("Fornecedor 8 não encontrado."))

	assert.NoError(t, svc.DeleteSupplier(ctx, 3))
	assert.IsType(t, &apperror.NotFoundError{}, svc.DeleteSupplier(ctx, 8))
	assert.IsType(t, &apperror.ValidationError{}, svc.DeleteSupplier(ctx, -1))
}
