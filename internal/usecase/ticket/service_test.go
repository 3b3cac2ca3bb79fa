package ticket

import (
	"context"
	"testing"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepo - mock for repository.CustomerRepository
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) SearchByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepo) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) ListAll(ctx context.Context) ([]*domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

// MockMechanicRepo - mock for repository.MechanicRepository
type MockMechanicRepo struct {
	mock.Mock
}

func (m *MockMechanicRepo) Create(ctx context.Context, mechanic *domain.Mechanic) error {
	return m.Called(ctx, mechanic).Error(0)
}

func (m *MockMechanicRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mechanic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mechanic), args.Error(1)
}

func (m *MockMechanicRepo) GetByEmail(ctx context.Context, email string) (*domain.Mechanic, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mechanic), args.Error(1)
}

func (m *MockMechanicRepo) GetExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockMechanicRepo) Update(ctx context.Context, mechanic *domain.Mechanic) error {
	return m.Called(ctx, mechanic).Error(0)
}

func (m *MockMechanicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMechanicRepo) List(ctx context.Context, limit, offset int) ([]*domain.Mechanic, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mechanic), args.Error(1)
}

func (m *MockMechanicRepo) ListAll(ctx context.Context) ([]*domain.Mechanic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mechanic), args.Error(1)
}

func (m *MockMechanicRepo) ListByTicketCount(ctx context.Context) ([]*domain.Mechanic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mechanic), args.Error(1)
}

// MockTicketRepo - mock for repository.ServiceTicketRepository
type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *domain.ServiceTicket, mechanicIDs []uuid.UUID) error {
	args := m.Called(ctx, ticket, mechanicIDs)
	if args.Error(0) == nil {
		ticket.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.ServiceTicket, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketRepo) List(ctx context.Context, limit, offset int) ([]*domain.ServiceTicket, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketRepo) ListAll(ctx context.Context) ([]*domain.ServiceTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceTicket), args.Error(1)
}

// MockTicketMechanicRepo - mock for repository.TicketMechanicRepository
type MockTicketMechanicRepo struct {
	mock.Mock
}

func (m *MockTicketMechanicRepo) Create(ctx context.Context, link *domain.TicketMechanic) error {
	return m.Called(ctx, link).Error(0)
}

func (m *MockTicketMechanicRepo) Exists(ctx context.Context, ticketID, mechanicID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ticketID, mechanicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketMechanicRepo) Delete(ctx context.Context, ticketID, mechanicID uuid.UUID) error {
	return m.Called(ctx, ticketID, mechanicID).Error(0)
}

func (m *MockTicketMechanicRepo) GetMechanicsByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.Mechanic, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mechanic), args.Error(1)
}

func (m *MockTicketMechanicRepo) BatchEdit(ctx context.Context, ticketID uuid.UUID, addIDs, removeIDs []uuid.UUID) error {
	return m.Called(ctx, ticketID, addIDs, removeIDs).Error(0)
}

// MockTicketPartRepo - mock for repository.TicketPartRepository
type MockTicketPartRepo struct {
	mock.Mock
}

func (m *MockTicketPartRepo) Create(ctx context.Context, link *domain.TicketPart) error {
	return m.Called(ctx, link).Error(0)
}

func (m *MockTicketPartRepo) Exists(ctx context.Context, ticketID, partID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ticketID, partID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketPartRepo) Delete(ctx context.Context, ticketID, partID uuid.UUID) error {
	return m.Called(ctx, ticketID, partID).Error(0)
}

func (m *MockTicketPartRepo) GetByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.TicketPart, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TicketPart), args.Error(1)
}

// MockPartRepo - mock for repository.InventoryPartRepository
type MockPartRepo struct {
	mock.Mock
}

func (m *MockPartRepo) Create(ctx context.Context, part *domain.InventoryPart) error {
	return m.Called(ctx, part).Error(0)
}

func (m *MockPartRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryPart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryPart), args.Error(1)
}

func (m *MockPartRepo) GetByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error) {
	args := m.Called(ctx, partName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryPart), args.Error(1)
}

func (m *MockPartRepo) SearchByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error) {
	args := m.Called(ctx, partName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryPart), args.Error(1)
}

func (m *MockPartRepo) Update(ctx context.Context, part *domain.InventoryPart) error {
	return m.Called(ctx, part).Error(0)
}

func (m *MockPartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPartRepo) List(ctx context.Context, limit, offset int) ([]*domain.InventoryPart, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InventoryPart), args.Error(1)
}

func (m *MockPartRepo) ListAll(ctx context.Context) ([]*domain.InventoryPart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InventoryPart), args.Error(1)
}

func newTestService(
	ticketRepo *MockTicketRepo,
	customerRepo *MockCustomerRepo,
	mechanicRepo *MockMechanicRepo,
	ticketMechanicRepo *MockTicketMechanicRepo,
	ticketPartRepo *MockTicketPartRepo,
	partRepo *MockPartRepo,
) *Service {
	return NewService(
		ticketRepo, customerRepo, mechanicRepo,
		ticketMechanicRepo, ticketPartRepo, partRepo,
		logger.NewNoop(),
	)
}

func TestService_CreateTicket_MissingMechanicsRejectEverything(t *testing.T) {
	customerID := uuid.New()
	knownID := uuid.New()
	missingOne := uuid.New()
	missingTwo := uuid.New()

	customerRepo := new(MockCustomerRepo)
	customerRepo.On("GetByID", mock.Anything, customerID).
		Return(&domain.Customer{ID: customerID, Name: "Ada", Email: "ada@example.com"}, nil)

	mechanicRepo := new(MockMechanicRepo)
	mechanicRepo.On("GetExistingIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]bool{knownID: true}, nil)

	ticketRepo := new(MockTicketRepo)

	svc := newTestService(ticketRepo, customerRepo, mechanicRepo,
		new(MockTicketMechanicRepo), new(MockTicketPartRepo), new(MockPartRepo))

	_, err := svc.CreateTicket(context.Background(), &CreateTicketRequest{
		VIN:         "1HGBH41JXMN109186",
		ServiceDate: "2025-06-01",
		Description: "Brake pad replacement",
		CustomerID:  customerID,
		MechanicIDs: []uuid.UUID{knownID, missingOne, missingTwo},
	})

	var missingErr *domain.MissingMechanicsError
	assert.ErrorAs(t, err, &missingErr)
	assert.ElementsMatch(t, []uuid.UUID{missingOne, missingTwo}, missingErr.MissingIDs)

	// Nothing was written
	ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateTicket_UnknownCustomer(t *testing.T) {
	customerID := uuid.New()

	customerRepo := new(MockCustomerRepo)
	customerRepo.On("GetByID", mock.Anything, customerID).
		Return(nil, domain.ErrCustomerNotFound)

	ticketRepo := new(MockTicketRepo)

	svc := newTestService(ticketRepo, customerRepo, new(MockMechanicRepo),
		new(MockTicketMechanicRepo), new(MockTicketPartRepo), new(MockPartRepo))

	_, err := svc.CreateTicket(context.Background(), &CreateTicketRequest{
		VIN:         "1HGBH41JXMN109186",
		ServiceDate: "2025-06-01",
		Description: "Brake pad replacement",
		CustomerID:  customerID,
	})

	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_BatchEditMechanics_UnknownIDFailsWholeBatch(t *testing.T) {
	ticketID := uuid.New()
	knownID := uuid.New()
	unknownID := uuid.New()
	addIDs := []uuid.UUID{knownID}
	removeIDs := []uuid.UUID{unknownID}

	ticketRepo := new(MockTicketRepo)
	ticketRepo.On("GetByID", mock.Anything, ticketID).
		Return(&domain.ServiceTicket{ID: ticketID}, nil)

	mechanicRepo := new(MockMechanicRepo)
	mechanicRepo.On("GetExistingIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]bool{knownID: true}, nil)

	tmRepo := new(MockTicketMechanicRepo)

	svc := newTestService(ticketRepo, new(MockCustomerRepo), mechanicRepo,
		tmRepo, new(MockTicketPartRepo), new(MockPartRepo))

	_, err := svc.BatchEditMechanics(context.Background(), ticketID, &UpdateTicketRequest{
		AddIDs:    &addIDs,
		RemoveIDs: &removeIDs,
	})

	// The error carries the unresolved id, not just a bare not-found
	var missingErr *domain.MissingMechanicsError
	assert.ErrorAs(t, err, &missingErr)
	assert.ElementsMatch(t, []uuid.UUID{unknownID}, missingErr.MissingIDs)
	assert.Contains(t, err.Error(), unknownID.String())

	tmRepo.AssertNotCalled(t, "BatchEdit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_BatchEditMechanics_AppliesBothLists(t *testing.T) {
	ticketID := uuid.New()
	addID := uuid.New()
	removeID := uuid.New()
	addIDs := []uuid.UUID{addID}
	removeIDs := []uuid.UUID{removeID}

	resulting := []*domain.Mechanic{{ID: addID, Name: "New", Email: "new@example.com"}}

	ticketRepo := new(MockTicketRepo)
	ticketRepo.On("GetByID", mock.Anything, ticketID).
		Return(&domain.ServiceTicket{ID: ticketID}, nil)

	mechanicRepo := new(MockMechanicRepo)
	mechanicRepo.On("GetExistingIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]bool{addID: true, removeID: true}, nil)

	tmRepo := new(MockTicketMechanicRepo)
	tmRepo.On("BatchEdit", mock.Anything, ticketID, addIDs, removeIDs).Return(nil)
	tmRepo.On("GetMechanicsByTicket", mock.Anything, ticketID).Return(resulting, nil)

	svc := newTestService(ticketRepo, new(MockCustomerRepo), mechanicRepo,
		tmRepo, new(MockTicketPartRepo), new(MockPartRepo))

	ticket, err := svc.BatchEditMechanics(context.Background(), ticketID, &UpdateTicketRequest{
		AddIDs:    &addIDs,
		RemoveIDs: &removeIDs,
	})

	assert.NoError(t, err)
	assert.Len(t, ticket.Mechanics, 1)
	assert.Equal(t, addID, ticket.Mechanics[0].ID)

	tmRepo.AssertExpectations(t)
}

func TestService_AttachPart_DefaultsQuantityToOne(t *testing.T) {
	ticketID := uuid.New()
	partID := uuid.New()

	ticketRepo := new(MockTicketRepo)
	ticketRepo.On("GetByID", mock.Anything, ticketID).
		Return(&domain.ServiceTicket{ID: ticketID}, nil)

	partRepo := new(MockPartRepo)
	partRepo.On("GetByID", mock.Anything, partID).
		Return(&domain.InventoryPart{ID: partID, PartName: "Brake pad", Price: 49.99}, nil)

	tpRepo := new(MockTicketPartRepo)
	tpRepo.On("Exists", mock.Anything, ticketID, partID).Return(false, nil)
	tpRepo.On("Create", mock.Anything, mock.MatchedBy(func(link *domain.TicketPart) bool {
		return link.Quantity == 1
	})).Return(nil)

	svc := newTestService(ticketRepo, new(MockCustomerRepo), new(MockMechanicRepo),
		new(MockTicketMechanicRepo), tpRepo, partRepo)

	link, err := svc.AttachPart(context.Background(), ticketID, &AttachPartRequest{PartID: partID})

	assert.NoError(t, err)
	assert.Equal(t, 1, link.Quantity)
	assert.NotNil(t, link.Part)

	tpRepo.AssertExpectations(t)
}

func TestService_AttachPart_DuplicateIsConflict(t *testing.T) {
	ticketID := uuid.New()
	partID := uuid.New()

	ticketRepo := new(MockTicketRepo)
	ticketRepo.On("GetByID", mock.Anything, ticketID).
		Return(&domain.ServiceTicket{ID: ticketID}, nil)

	partRepo := new(MockPartRepo)
	partRepo.On("GetByID", mock.Anything, partID).
		Return(&domain.InventoryPart{ID: partID, PartName: "Brake pad"}, nil)

	tpRepo := new(MockTicketPartRepo)
	tpRepo.On("Exists", mock.Anything, ticketID, partID).Return(true, nil)

	svc := newTestService(ticketRepo, new(MockCustomerRepo), new(MockMechanicRepo),
		new(MockTicketMechanicRepo), tpRepo, partRepo)

	_, err := svc.AttachPart(context.Background(), ticketID, &AttachPartRequest{PartID: partID, Quantity: 3})

	assert.ErrorIs(t, err, domain.ErrPartAlreadyAttached)

	// The existing link is left untouched
	tpRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
