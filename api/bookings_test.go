package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/repository"
	"github.com/dmtran91/flybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, orderCode string) (*domain.Booking, error) {
	args := m.Called(ctx, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ProcessPayment(ctx context.Context, orderCode string, input booking.PaymentInput) (*domain.Booking, string, error) {
	args := m.Called(ctx, orderCode, input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.String(1), args.Error(2)
}

func (m *MockBookingUseCase) UpdateStatus(ctx context.Context, orderCode string, status domain.BookingStatus, note string) (*domain.Booking, error) {
	args := m.Called(ctx, orderCode, status, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, orderCode, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, orderCode, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) DeleteBooking(ctx context.Context, orderCode string) error {
	args := m.Called(ctx, orderCode)
	return args.Error(0)
}

func sampleBooking() *domain.Booking {
	departure := time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            1,
		OrderCode:     "order-123",
		PNR:           "ABC234",
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Contact: domain.Contact{
			FullName: "Nguyen Van A",
			Email:    "a@example.com",
			Phone:    "0901234567",
		},
		Counts: domain.PassengerCounts{Adults: 1},
		Passengers: []domain.Passenger{
			{Type: domain.PassengerAdult, FirstName: "Van A", LastName: "Nguyen", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Outbound: &domain.FareOption{
			Airline:          "Vietnam Airlines",
			AirlineCode:      "VN",
			FlightNumber:     "VN210",
			DepartureAirport: "HAN",
			ArrivalAirport:   "SGN",
			DepartureTime:    departure,
			ArrivalTime:      departure.Add(2 * time.Hour),
			PriceNetUSD:      100,
		},
		TotalAmountVND:  2794000,
		PaymentDeadline: departure.Add(-4 * time.Hour),
		CreatedAt:       time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	created := sampleBooking()
	input := booking.CreateBookingInput{
		Contact:    created.Contact,
		Counts:     created.Counts,
		Passengers: created.Passengers,
		Outbound:   created.Outbound,
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "order-123", response.OrderCode)
	assert.Equal(t, "ABC234", response.PNR)
	assert.Equal(t, string(domain.BookingStatusPending), response.Status)
	assert.Equal(t, int64(2794000), response.TotalAmount)

	mockService.AssertExpectations(t)
}

// Client-supplied user ids are ignored; without a session the checkout is a
// guest checkout.
func TestBookingHandler_create_ignoresClientUserID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	created := sampleBooking()
	input := booking.CreateBookingInput{
		UserID:     42,
		Contact:    created.Contact,
		Counts:     created.Counts,
		Passengers: created.Passengers,
		Outbound:   created.Outbound,
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), mock.MatchedBy(func(in booking.CreateBookingInput) bool {
		return in.UserID == 0
	})).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	b := sampleBooking()
	c.Params = gin.Params{{Key: "code", Value: b.OrderCode}}
	c.Request = httptest.NewRequest("GET", "/bookings/"+b.OrderCode, nil)

	mockService.On("GetBooking", c.Request.Context(), b.OrderCode).Return(b, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, b.OrderCode, response.OrderCode)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "code", Value: "missing"}}
	c.Request = httptest.NewRequest("GET", "/bookings/missing", nil)

	mockService.On("GetBooking", c.Request.Context(), "missing").Return(nil, repository.ErrBookingNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_eticket(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	b := sampleBooking()
	c.Params = gin.Params{{Key: "code", Value: b.OrderCode}}
	c.Request = httptest.NewRequest("GET", "/bookings/"+b.OrderCode+"/ticket", nil)

	mockService.On("GetBooking", c.Request.Context(), b.OrderCode).Return(b, nil)

	handler.eticket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), b.PNR)
	assert.NotEmpty(t, w.Body.Bytes())

	mockService.AssertExpectations(t)
}
