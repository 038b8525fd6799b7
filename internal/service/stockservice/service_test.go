package stockservice_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/validation"
	"estoqueti/internal/service/stockservice"
)

// MockMaterialRepository é uma implementação mock da interface MaterialRepository
type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) GetMaterialByID(ctx context.Context, id string) (domain.Material, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Material), args.Error(1)
}

func (m *MockMaterialRepository) ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]domain.Material, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Material), args.Error(1)
}

func (m *MockMaterialRepository) AdjustStock(ctx context.Context, id string, delta int) (domain.Material, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(domain.Material), args.Error(1)
}

// MockMovementRepository é uma implementação mock da interface MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) AppendMovement(ctx context.Context, movement domain.Movement) (domain.Movement, error) {
	args := m.Called(ctx, movement)
	if fn, ok := args.Get(0).(func(context.Context, domain.Movement) domain.Movement); ok {
		return fn(ctx, movement), args.Error(1)
	}
	return args.Get(0).(domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Movement), args.Error(1)
}

// MockPublisher guarda os eventos publicados.
type MockPublisher struct {
	events []domain.Event
}

func (p *MockPublisher) Publish(evt domain.Event) { p.events = append(p.events, evt) }

func newService() (*stockservice.Service, *MockMaterialRepository, *MockMovementRepository, *MockPublisher) {
	materials := new(MockMaterialRepository)
	movements := new(MockMovementRepository)
	pub := &MockPublisher{}
	svc := stockservice.NewService(materials, movements, pub, validation.New(), logger.NewNop())
	return svc, materials, movements, pub
}

func TestAdjustStock_Add(t *testing.T) {
	svc, materials, _, pub := newService()
	ctx := context.Background()

	materials.On("AdjustStock", ctx, "m1", 5).
		Return(domain.Material{ID: "m1", CurrentStock: 50, MinStock: 10}, nil)

	result, err := svc.AdjustStock(ctx, "m1", 5, domain.StockAdd)

	assert.NoError(t, err)
	assert.Equal(t, 50, result.CurrentStock)
	assert.Empty(t, pub.events)
	materials.AssertExpectations(t)
}

// TestAdjustStock_RemovePublishesLowStock verifica o aviso quando o saldo atinge o mínimo.
func TestAdjustStock_RemovePublishesLowStock(t *testing.T) {
	svc, materials, _, pub := newService()
	ctx := context.Background()

	materials.On("AdjustStock", ctx, "m5", -3).
		Return(domain.Material{ID: "m5", Description: "Switch", CurrentStock: 2, MinStock: 2}, nil)

	_, err := svc.AdjustStock(ctx, "m5", 3, domain.StockRemove)

	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventStockLow, pub.events[0].Type)
	assert.Equal(t, "m5", pub.events[0].MaterialID)
	require.NotNil(t, pub.events[0].Stock)
	assert.Equal(t, 2, *pub.events[0].Stock)
}

func TestAdjustStock_InvalidQuantity(t *testing.T) {
	svc, materials, _, _ := newService()

	_, err := svc.AdjustStock(context.Background(), "m1", 0, domain.StockAdd)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	materials.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustStock_InvalidDirection(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.AdjustStock(context.Background(), "m1", 1, domain.StockDirection("SIDEWAYS"))

	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestAdjustStock_NegativeAllowed garante que o livro não impõe limite inferior.
func TestAdjustStock_NegativeAllowed(t *testing.T) {
	svc, materials, _, _ := newService()
	ctx := context.Background()

	materials.On("AdjustStock", ctx, "m6", -4).
		Return(domain.Material{ID: "m6", CurrentStock: -4, MinStock: 20}, nil)

	result, err := svc.AdjustStock(ctx, "m6", 4, domain.StockRemove)

	assert.NoError(t, err)
	assert.Equal(t, -4, result.CurrentStock)
}

func TestAdjustStock_NotFoundPassthrough(t *testing.T) {
	svc, materials, _, _ := newService()
	ctx := context.Background()

	materials.On("AdjustStock", ctx, "x", 1).
		Return(domain.Material{}, apperror.NewNotFoundError("Material não encontrado."))

	_, err := svc.AdjustStock(ctx, "x", 1, domain.StockAdd)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestAdjustStock_RepositoryFailure(t *testing.T) {
	svc, materials, _, _ := newService()
	ctx := context.Background()

	materials.On("AdjustStock", ctx, "m1", 1).Return(domain.Material{}, errors.New("disk full"))

	_, err := svc.AdjustStock(ctx, "m1", 1, domain.StockAdd)

	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao ajustar estoque")
}

func TestRecordMovement(t *testing.T) {
	svc, _, movements, _ := newService()
	ctx := context.Background()

	movements.On("AppendMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.Type == domain.MovementSaida && m.Quantity == 2 && m.Recipient == "João" && m.Date != ""
	})).Return(domain.Movement{ID: "mov-42"}, nil)

	id, err := svc.RecordMovement(ctx, domain.Movement{
		Type:       domain.MovementSaida,
		MaterialID: "m1",
		Quantity:   2,
		Recipient:  "João",
	})

	assert.NoError(t, err)
	assert.Equal(t, "mov-42", id)
	movements.AssertExpectations(t)
}

func TestRecordMovement_Invalid(t *testing.T) {
	svc, _, movements, _ := newService()

	_, err := svc.RecordMovement(context.Background(), domain.Movement{Type: "TRANSFERENCIA", MaterialID: "m1", Quantity: 1})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.RecordMovement(context.Background(), domain.Movement{Type: domain.MovementSaida, MaterialID: "m1"})
	assert.IsType(t, &apperror.ValidationError{}, err)

	movements.AssertNotCalled(t, "AppendMovement", mock.Anything, mock.Anything)
}

// TestRegisterEntry_Devolucao verifica os campos gravados numa devolução.
func TestRegisterEntry_Devolucao(t *testing.T) {
	svc, materials, movements, _ := newService()
	ctx := context.Background()
	actor := domain.Actor{UserID: "1", Name: "Carlos Admin", Role: domain.RoleAdmin}

	materials.On("GetMaterialByID", ctx, "m2").Return(domain.Material{ID: "m2", CurrentStock: 10, MinStock: 5}, nil)
	materials.On("AdjustStock", ctx, "m2", 3).Return(domain.Material{ID: "m2", CurrentStock: 13, MinStock: 5}, nil)
	movements.On("AppendMovement", ctx, mock.AnythingOfType("domain.Movement")).
		Return(func(_ context.Context, m domain.Movement) domain.Movement {
			m.ID = "mov-1"
			return m
		}, nil)

	result, err := svc.RegisterEntry(ctx, actor, domain.StockEntryForm{
		Type:        domain.MovementDevolucao,
		MaterialID:  "m2",
		Quantity:    3,
		Observation: "CH-1234",
		DeliveredBy: "Técnico de campo",
	})

	require.NoError(t, err)
	assert.Equal(t, "mov-1", result.ID)
	assert.Equal(t, domain.MovementDevolucao, result.Type)
	assert.Equal(t, "Carlos Admin", result.Responsible)
	assert.Equal(t, "CH-1234", result.Ticket)
	assert.Equal(t, "Técnico de campo", result.DeliveredBy)
	materials.AssertExpectations(t)
}

func TestRegisterEntry_EntradaIgnoresDeliveredBy(t *testing.T) {
	svc, materials, movements, _ := newService()
	ctx := context.Background()

	materials.On("GetMaterialByID", ctx, "m1").Return(domain.Material{ID: "m1"}, nil)
	materials.On("AdjustStock", ctx, "m1", 10).Return(domain.Material{ID: "m1", CurrentStock: 55, MinStock: 10}, nil)
	movements.On("AppendMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.DeliveredBy == "" && m.NF == "NF-999" && m.Responsible == "Admin"
	})).Return(domain.Movement{ID: "mov-2", NF: "NF-999"}, nil)

	result, err := svc.RegisterEntry(ctx, domain.Actor{}, domain.StockEntryForm{
		Type:        domain.MovementEntrada,
		MaterialID:  "m1",
		Quantity:    10,
		NF:          "NF-999",
		DeliveredBy: "ignorado",
	})

	require.NoError(t, err)
	assert.Equal(t, "mov-2", result.ID)
	movements.AssertExpectations(t)
}

func TestRegisterEntry_Validation(t *testing.T) {
	svc, materials, _, _ := newService()

	_, err := svc.RegisterEntry(context.Background(), domain.Actor{}, domain.StockEntryForm{
		Type:     domain.MovementEntrada,
		Quantity: 1,
	})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "Selecione um material.")

	_, err = svc.RegisterEntry(context.Background(), domain.Actor{}, domain.StockEntryForm{
		Type:       domain.MovementSaida,
		MaterialID: "m1",
		Quantity:   1,
	})
	assert.IsType(t, &apperror.ValidationError{}, err)

	materials.AssertNotCalled(t, "GetMaterialByID", mock.Anything, mock.Anything)
}

func TestRegisterEntry_UnknownMaterial(t *testing.T) {
	svc, materials, _, _ := newService()
	ctx := context.Background()

	materials.On("GetMaterialByID", ctx, "nope").Return(domain.Material{}, apperror.NewNotFoundError("Material não encontrado."))

	_, err := svc.RegisterEntry(ctx, domain.Actor{}, domain.StockEntryForm{Type: domain.MovementEntrada, MaterialID: "nope", Quantity: 1})

	assert.IsType(t, &apperror.NotFoundError{}, err)
	materials.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func listFixture(materials *MockMaterialRepository, movements *MockMovementRepository) {
	movements.On("ListMovements", mock.Anything).Return([]domain.Movement{
		{ID: "mov-3", Type: domain.MovementSaida, MaterialID: "m1", Quantity: 2, Date: "2023-10-25", Responsible: "Carlos Admin", Recipient: "Ana"},
		{ID: "mov-2", Type: domain.MovementEntrada, MaterialID: "m2", Quantity: 20, Date: "2023-10-21", Responsible: "Carlos Admin", NF: "NF-123"},
		{ID: "mov-1", Type: domain.MovementEntrada, MaterialID: "m1", Quantity: 50, Date: "2023-10-20", Responsible: "Carlos Admin"},
	}, nil)
	materials.On("ListMaterials", mock.Anything, domain.MaterialFilter{}).Return([]domain.Material{
		{ID: "m1", Description: `Cabo de Rede CAT6 "Azul"`},
		{ID: "m2", Description: "Conector RJ45"},
	}, nil)
}

func TestListMovements_Filters(t *testing.T) {
	svc, materials, movements, _ := newService()
	listFixture(materials, movements)
	ctx := context.Background()

	all, err := svc.ListMovements(ctx, domain.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Conector RJ45", all[1].MaterialDescription)

	byType, err := svc.ListMovements(ctx, domain.MovementFilter{Type: domain.MovementEntrada})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byMaterial, err := svc.ListMovements(ctx, domain.MovementFilter{Material: "cabo"})
	require.NoError(t, err)
	assert.Len(t, byMaterial, 2)

	byDate, err := svc.ListMovements(ctx, domain.MovementFilter{Date: "2023-10-21"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "mov-2", byDate[0].ID)
}

func TestExportCSV(t *testing.T) {
	svc, materials, movements, _ := newService()
	listFixture(materials, movements)

	out, err := svc.ExportCSV(context.Background(), domain.MovementFilter{Material: "cabo"})

	require.NoError(t, err)
	expected := "Data,Tipo,Material,Quantidade,Responsavel,NotaFiscal,Recebedor\n" +
		`2023-10-25,SAIDA,"Cabo de Rede CAT6 ""Azul""",2,Carlos Admin,-,Ana` + "\n" +
		`2023-10-20,ENTRADA,"Cabo de Rede CAT6 ""Azul""",50,Carlos Admin,-,-`
	assert.Equal(t, expected, string(out))
}

func TestWriteMovementsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, stockservice.WriteMovementsCSV(&buf, nil))

	assert.Equal(t, stockservice.CSVHeader+"\n", buf.String())
}
