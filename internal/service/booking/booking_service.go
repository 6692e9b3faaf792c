package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/kafka"
	"github.com/dmtran91/flybooking/internal/pricing"
	"github.com/dmtran91/flybooking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, orderCode string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	ProcessPayment(ctx context.Context, orderCode string, input PaymentInput) (*domain.Booking, string, error)
	UpdateStatus(ctx context.Context, orderCode string, status domain.BookingStatus, note string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, orderCode, reason string) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, orderCode string) error
}

// GuestResolver supplies a user identity for checkouts without a session.
type GuestResolver interface {
	ResolveGuest(ctx context.Context, contact domain.Contact) (int64, error)
}

// FeeProvider yields the current admin fee table; it always returns a usable
// config, falling back to built-in defaults.
type FeeProvider interface {
	Current(ctx context.Context) domain.AdminFeeConfig
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	users              GuestResolver
	fees               FeeProvider
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	now                func() time.Time
}

type CreateBookingInput struct {
	UserID      int64                       `json:"user_id"`
	Contact     domain.Contact              `json:"contact"`
	Counts      domain.PassengerCounts      `json:"counts"`
	Passengers  []domain.Passenger          `json:"passengers"`
	Outbound    *domain.FareOption          `json:"outbound"`
	Inbound     *domain.FareOption          `json:"inbound,omitempty"`
	Ancillaries []domain.AncillarySelection `json:"ancillaries,omitempty"`
}

type PaymentInput struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
	AmountVND int64  `json:"amount_vnd"`
	Note      string `json:"note,omitempty"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users GuestResolver,
	fees FeeProvider,
	producer Producer,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		users:       users,
		fees:        fees,
		producer:    producer,
		eventsTopic: eventsTopic,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking is the checkout confirmation: it validates the selection,
// resolves the paying identity, prices the fare against the current fee table
// and persists the booking as pending.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Outbound == nil {
		return nil, errors.New("an outbound fare must be selected")
	}
	if err := validateContact(input.Contact); err != nil {
		return nil, err
	}
	airlineCode := input.Outbound.AirlineCode
	if airlineCode == "" {
		airlineCode = pricing.AirlineCode(input.Outbound.Airline)
	}
	if err := domain.ValidatePassengers(input.Counts, input.Passengers, input.Outbound.DepartureTime, airlineCode); err != nil {
		return nil, err
	}

	userID := input.UserID
	if userID == 0 {
		var err error
		userID, err = s.users.ResolveGuest(ctx, input.Contact)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve a user for this booking, please register first: %w", err)
		}
	}

	feeTable := s.fees.Current(ctx)
	fee := pricing.ResolveFee(feeTable, input.Outbound.Airline, input.Outbound.DepartureAirport, input.Outbound.ArrivalAirport)
	quote := pricing.Calculate(input.Outbound, input.Inbound, input.Counts, &fee, input.Ancillaries)
	if quote.FinalTotal <= 0 {
		return nil, errors.New("selection does not produce a payable total")
	}

	now := s.now()
	booking := &domain.Booking{
		OrderCode:       uuid.NewString(),
		PNR:             newPNR(),
		UserID:          userID,
		Contact:         input.Contact,
		Counts:          input.Counts,
		Passengers:      input.Passengers,
		Outbound:        input.Outbound,
		Inbound:         input.Inbound,
		Ancillaries:     input.Ancillaries,
		TotalAmountVND:  quote.FinalTotal,
		PaymentDeadline: pricing.PaymentDeadline(input.Outbound.DepartureTime, now),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Notification delivery is asynchronous; a publish failure must not fail
	// the booking the customer already holds.
	if err := s.publish(ctx, kafka.EventBookingCreated, booking, ""); err != nil {
		log.Printf("WARNING: publish %s for booking %s: %v", kafka.EventBookingCreated, booking.OrderCode, err)
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, orderCode string) (*domain.Booking, error) {
	return s.bookings.GetByOrderCode(ctx, orderCode)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ProcessPayment records the payment, then confirms the booking as a second
// independent step. The two writes are not atomic: when confirmation fails
// the payment stands, the booking stays in its previous status and the caller
// gets a warning instead of an error.
func (s *BookingService) ProcessPayment(ctx context.Context, orderCode string, input PaymentInput) (*domain.Booking, string, error) {
	if input.AmountVND <= 0 {
		return nil, "", errors.New("payment amount must be positive")
	}
	if input.Method == "" {
		return nil, "", errors.New("payment method is required")
	}

	info := domain.PaymentInfo{
		Method:    input.Method,
		Reference: input.Reference,
		AmountVND: input.AmountVND,
		PaidAt:    s.now(),
		Note:      input.Note,
	}
	paid, err := s.bookings.MarkPaid(ctx, orderCode, info)
	if err != nil {
		return nil, "", err
	}
	if err := s.publish(ctx, kafka.EventBookingPaid, paid, ""); err != nil {
		log.Printf("WARNING: publish %s for booking %s: %v", kafka.EventBookingPaid, orderCode, err)
	}

	confirmed, err := s.bookings.UpdateStatus(ctx, orderCode, domain.BookingStatusConfirmed)
	if err != nil {
		log.Printf("WARNING: booking %s paid but not confirmed: %v", orderCode, err)
		return paid, "payment recorded, but confirming the booking failed; confirm it manually", nil
	}
	if err := s.publish(ctx, kafka.EventBookingConfirmed, confirmed, ""); err != nil {
		log.Printf("WARNING: publish %s for booking %s: %v", kafka.EventBookingConfirmed, orderCode, err)
	}
	return confirmed, "", nil
}

// UpdateStatus is the manual admin transition. Re-applying the current status
// is allowed; confirmation and cancellation notify the customer every time.
func (s *BookingService) UpdateStatus(ctx context.Context, orderCode string, status domain.BookingStatus, note string) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown booking status %q", status)
	}

	updated, err := s.bookings.UpdateStatus(ctx, orderCode, status)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.BookingStatusConfirmed:
		if err := s.publish(ctx, kafka.EventBookingConfirmed, updated, note); err != nil {
			log.Printf("WARNING: publish %s for booking %s: %v", kafka.EventBookingConfirmed, orderCode, err)
		}
	case domain.BookingStatusCancelled:
		if err := s.publish(ctx, kafka.EventBookingCancelled, updated, note); err != nil {
			log.Printf("WARNING: publish %s for booking %s: %v", kafka.EventBookingCancelled, orderCode, err)
		}
	}
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, orderCode, reason string) (*domain.Booking, error) {
	updated, err := s.bookings.Cancel(ctx, orderCode, reason)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, kafka.EventBookingCancelled, updated, reason); err != nil {
		log.Printf("WARNING: publish %s for booking %s: %v", kafka.EventBookingCancelled, orderCode, err)
	}
	return updated, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, orderCode string) error {
	return s.bookings.Delete(ctx, orderCode)
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking, reason string) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		OrderCode:     b.OrderCode,
		PNR:           b.PNR,
		Email:         b.Contact.Email,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmountVND,
		Reason:        reason,
		OccurredAt:    s.now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, b.OrderCode, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, b.OrderCode, event)
	}
	return nil
}

func validateContact(c domain.Contact) error {
	if strings.TrimSpace(c.FullName) == "" {
		return errors.New("contact name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("contact email is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return errors.New("contact phone is required")
	}
	return nil
}

// PNR alphabet skips 0/O and 1/I to keep record codes readable over the phone.
const pnrAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newPNR() string {
	id := uuid.New()
	code := make([]byte, 6)
	for i := range code {
		code[i] = pnrAlphabet[int(id[i])%len(pnrAlphabet)]
	}
	return string(code)
}

var _ BookingUseCase = (*BookingService)(nil)
