package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/ticket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTicketService - mock for the ticket service
type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) CreateTicket(ctx context.Context, req *ticket.CreateTicketRequest) (*domain.ServiceTicket, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketService) GetTicketByID(ctx context.Context, id uuid.UUID) (*domain.ServiceTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketService) ListTickets(ctx context.Context, limit, offset int) ([]*domain.ServiceTicket, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketService) ListAllTickets(ctx context.Context) ([]*domain.ServiceTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketService) GetTicketsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.ServiceTicket, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketService) BatchEditMechanics(ctx context.Context, ticketID uuid.UUID, req *ticket.UpdateTicketRequest) (*domain.ServiceTicket, error) {
	args := m.Called(ctx, ticketID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceTicket), args.Error(1)
}

func (m *MockTicketService) AttachPart(ctx context.Context, ticketID uuid.UUID, req *ticket.AttachPartRequest) (*domain.TicketPart, error) {
	args := m.Called(ctx, ticketID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketPart), args.Error(1)
}

func (m *MockTicketService) DetachPart(ctx context.Context, ticketID uuid.UUID, req *ticket.DetachPartRequest) error {
	args := m.Called(ctx, ticketID, req)
	return args.Error(0)
}

// ticketRequest builds a request with the ticket id path parameter
func ticketRequest(t *testing.T, method, path, ticketID string, body []byte) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", ticketID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestTicketHandler_CreateTicket(t *testing.T) {
	customerID := uuid.New()
	ticketID := uuid.New()
	missingID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockTicketService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "successful creation",
			requestBody: ticket.CreateTicketRequest{
				VIN:         "1HGBH41JXMN109186",
				ServiceDate: "2025-06-01",
				Description: "Brake pad replacement",
				CustomerID:  customerID,
			},
			mockSetup: func(m *MockTicketService) {
				m.On("CreateTicket", mock.Anything, mock.AnythingOfType("*ticket.CreateTicketRequest")).
					Return(CreateTestTicket(ticketID, customerID, "1HGBH41JXMN109186"), nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertSuccess(t, resp)
				if data, ok := resp["data"].(map[string]interface{}); ok {
					assert.Equal(t, "1HGBH41JXMN109186", data["vin"])
				}
			},
		},
		{
			name: "unknown mechanic ids fail the whole request and are all named",
			requestBody: ticket.CreateTicketRequest{
				VIN:         "1HGBH41JXMN109186",
				ServiceDate: "2025-06-01",
				Description: "Brake pad replacement",
				CustomerID:  customerID,
				MechanicIDs: []uuid.UUID{missingID},
			},
			mockSetup: func(m *MockTicketService) {
				m.On("CreateTicket", mock.Anything, mock.AnythingOfType("*ticket.CreateTicketRequest")).
					Return(nil, &domain.MissingMechanicsError{MissingIDs: []uuid.UUID{missingID}})
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.NotEmpty(t, resp["error"])
				ids, ok := resp["missing_ids"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, ids, 1)
				assert.Equal(t, missingID.String(), ids[0])
			},
		},
		{
			name: "duplicate VIN",
			requestBody: ticket.CreateTicketRequest{
				VIN:         "1HGBH41JXMN109186",
				ServiceDate: "2025-06-01",
				Description: "Brake pad replacement",
				CustomerID:  customerID,
			},
			mockSetup: func(m *MockTicketService) {
				m.On("CreateTicket", mock.Anything, mock.AnythingOfType("*ticket.CreateTicketRequest")).
					Return(nil, domain.ErrVINTaken)
			},
			expectedStatus: http.StatusConflict,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.NotEmpty(t, resp["error"])
			},
		},
		{
			name: "bad service date rejected before the service is called",
			requestBody: ticket.CreateTicketRequest{
				VIN:         "1HGBH41JXMN109186",
				ServiceDate: "June 1st 2025",
				Description: "Brake pad replacement",
				CustomerID:  customerID,
			},
			mockSetup:      func(m *MockTicketService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.NotEmpty(t, resp["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTicketService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewTicketHandler(mockService, log)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/service_tickets", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreateTicket(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_EditMechanics(t *testing.T) {
	ticketID := uuid.New()
	customerID := uuid.New()
	addID := uuid.New()

	updated := CreateTestTicket(ticketID, customerID, "1HGBH41JXMN109186")
	updated.Mechanics = []*domain.Mechanic{CreateTestMechanic(addID, "new@example.com")}

	tests := []struct {
		name           string
		requestBody    string
		mockSetup      func(*MockTicketService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:        "successful batch edit returns the resulting mechanic set",
			requestBody: `{"add_ids":["` + addID.String() + `"],"remove_ids":[]}`,
			mockSetup: func(m *MockTicketService) {
				m.On("BatchEditMechanics", mock.Anything, ticketID, mock.AnythingOfType("*ticket.UpdateTicketRequest")).
					Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertSuccess(t, resp)
				if data, ok := resp["data"].(map[string]interface{}); ok {
					mechanics, ok := data["mechanics"].([]interface{})
					assert.True(t, ok)
					assert.Len(t, mechanics, 1)
				}
			},
		},
		{
			name:        "empty lists are a valid no-op edit",
			requestBody: `{"add_ids":[],"remove_ids":[]}`,
			mockSetup: func(m *MockTicketService) {
				m.On("BatchEditMechanics", mock.Anything, ticketID, mock.AnythingOfType("*ticket.UpdateTicketRequest")).
					Return(CreateTestTicket(ticketID, customerID, "1HGBH41JXMN109186"), nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertSuccess(t, resp)
			},
		},
		{
			name:           "omitting remove_ids is a validation error",
			requestBody:    `{"add_ids":[]}`,
			mockSetup:      func(m *MockTicketService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.NotEmpty(t, resp["error"])
			},
		},
		{
			name:           "omitting add_ids is a validation error",
			requestBody:    `{"remove_ids":[]}`,
			mockSetup:      func(m *MockTicketService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.NotEmpty(t, resp["error"])
			},
		},
		{
			name:        "unknown mechanic in either list fails the whole batch and is named",
			requestBody: `{"add_ids":["` + addID.String() + `"],"remove_ids":[]}`,
			mockSetup: func(m *MockTicketService) {
				m.On("BatchEditMechanics", mock.Anything, ticketID, mock.AnythingOfType("*ticket.UpdateTicketRequest")).
					Return(nil, &domain.MissingMechanicsError{MissingIDs: []uuid.UUID{addID}})
			},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Contains(t, resp["error"], addID.String())
				ids, ok := resp["missing_ids"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, ids, 1)
				assert.Equal(t, addID.String(), ids[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTicketService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewTicketHandler(mockService, log)

			req := ticketRequest(t, http.MethodPut, "/service_tickets/"+ticketID.String(), ticketID.String(), []byte(tt.requestBody))
			w := httptest.NewRecorder()

			handler.EditMechanics(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_AttachPart(t *testing.T) {
	ticketID := uuid.New()
	partID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockTicketService)
		expectedStatus int
	}{
		{
			name:        "successful attachment",
			requestBody: ticket.AttachPartRequest{PartID: partID, Quantity: 2},
			mockSetup: func(m *MockTicketService) {
				m.On("AttachPart", mock.Anything, ticketID, mock.AnythingOfType("*ticket.AttachPartRequest")).
					Return(&domain.TicketPart{TicketID: ticketID, PartID: partID, Quantity: 2}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "attaching the same part twice is a conflict",
			requestBody: ticket.AttachPartRequest{PartID: partID},
			mockSetup: func(m *MockTicketService) {
				m.On("AttachPart", mock.Anything, ticketID, mock.AnythingOfType("*ticket.AttachPartRequest")).
					Return(nil, domain.ErrPartAlreadyAttached)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "unknown part",
			requestBody: ticket.AttachPartRequest{PartID: partID},
			mockSetup: func(m *MockTicketService) {
				m.On("AttachPart", mock.Anything, ticketID, mock.AnythingOfType("*ticket.AttachPartRequest")).
					Return(nil, domain.ErrPartNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing part id rejected before the service is called",
			requestBody:    ticket.AttachPartRequest{},
			mockSetup:      func(m *MockTicketService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTicketService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewTicketHandler(mockService, log)

			body, _ := json.Marshal(tt.requestBody)
			req := ticketRequest(t, http.MethodPut, "/service_tickets/"+ticketID.String()+"/add-part", ticketID.String(), body)
			w := httptest.NewRecorder()

			handler.AttachPart(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_DetachPart(t *testing.T) {
	ticketID := uuid.New()
	partID := uuid.New()

	tests := []struct {
		name           string
		mockSetup      func(*MockTicketService)
		expectedStatus int
	}{
		{
			name: "successful detachment",
			mockSetup: func(m *MockTicketService) {
				m.On("DetachPart", mock.Anything, ticketID, mock.AnythingOfType("*ticket.DetachPartRequest")).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "detaching an absent link is a 400",
			mockSetup: func(m *MockTicketService) {
				m.On("DetachPart", mock.Anything, ticketID, mock.AnythingOfType("*ticket.DetachPartRequest")).
					Return(domain.ErrPartNotAttached)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTicketService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewTicketHandler(mockService, log)

			body, _ := json.Marshal(ticket.DetachPartRequest{PartID: partID})
			req := ticketRequest(t, http.MethodPut, "/service_tickets/"+ticketID.String()+"/remove-part", ticketID.String(), body)
			w := httptest.NewRecorder()

			handler.DetachPart(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_GetMyTickets(t *testing.T) {
	customerID := uuid.New()
	tickets := []*domain.ServiceTicket{
		CreateTestTicket(uuid.New(), customerID, "1HGBH41JXMN109186"),
		CreateTestTicket(uuid.New(), customerID, "2HGBH41JXMN109187"),
	}

	mockService := new(MockTicketService)
	mockService.On("GetTicketsByCustomer", mock.Anything, customerID).Return(tickets, nil)

	log := logger.NewNoop()
	handler := NewTicketHandler(mockService, log)

	req := httptest.NewRequest(http.MethodGet, "/service_tickets/my-tickets", nil)
	req = req.WithContext(CreateAuthContext(t, customerID, domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.GetMyTickets(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	AssertSuccess(t, response)
	if data, ok := response["data"].([]interface{}); ok {
		assert.Len(t, data, 2)
	}

	mockService.AssertExpectations(t)
}
