package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByOrderCode(ctx context.Context, orderCode string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	MarkPaid(ctx context.Context, orderCode string, info domain.PaymentInfo) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, orderCode string, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, orderCode, reason string) (*domain.Booking, error)
	Delete(ctx context.Context, orderCode string) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, order_code, pnr, user_id, status, payment_status, contact, counts, passengers, outbound, inbound, ancillaries, total_amount, payment_info, payment_deadline, cancellation_reason, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	contact, err := json.Marshal(b.Contact)
	if err != nil {
		return err
	}
	counts, err := json.Marshal(b.Counts)
	if err != nil {
		return err
	}
	passengers, err := json.Marshal(b.Passengers)
	if err != nil {
		return err
	}
	outbound, err := marshalFare(b.Outbound)
	if err != nil {
		return err
	}
	inbound, err := marshalFare(b.Inbound)
	if err != nil {
		return err
	}
	ancillaries, err := json.Marshal(b.Ancillaries)
	if err != nil {
		return err
	}

	b.Status = domain.BookingStatusPending
	b.PaymentStatus = domain.PaymentStatusPending
	return r.db.QueryRow(ctx, `INSERT INTO bookings (order_code, pnr, user_id, status, payment_status, contact, counts, passengers, outbound, inbound, ancillaries, total_amount, payment_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		b.OrderCode, b.PNR, b.UserID, b.Status, b.PaymentStatus,
		contact, counts, passengers, outbound, inbound, ancillaries,
		b.TotalAmountVND, b.PaymentDeadline).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PGBookingRepository) GetByOrderCode(ctx context.Context, orderCode string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE order_code=$1`, orderCode)
	return scanBooking(row)
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// MarkPaid records the payment only. Confirming the booking is a separate
// step owned by the service layer.
func (r *PGBookingRepository) MarkPaid(ctx context.Context, orderCode string, info domain.PaymentInfo) (*domain.Booking, error) {
	payload, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `UPDATE bookings SET payment_status=$1, payment_info=$2, total_amount=$3, updated_at=now() WHERE order_code=$4 RETURNING `+bookingColumns,
		domain.PaymentStatusPaid, payload, info.AmountVND, orderCode)
	return scanBooking(row)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, orderCode string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE order_code=$2 RETURNING `+bookingColumns, status, orderCode)
	return scanBooking(row)
}

func (r *PGBookingRepository) Cancel(ctx context.Context, orderCode, reason string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, cancellation_reason=$2, updated_at=now() WHERE order_code=$3 RETURNING `+bookingColumns,
		domain.BookingStatusCancelled, reason, orderCode)
	return scanBooking(row)
}

func (r *PGBookingRepository) Delete(ctx context.Context, orderCode string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE order_code=$1`, orderCode)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func marshalFare(f *domain.FareOption) ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var contact, counts, passengers, outbound, inbound, ancillaries, paymentInfo []byte
	var reason *string
	var deadline *time.Time

	if err := row.Scan(&b.ID, &b.OrderCode, &b.PNR, &b.UserID, &b.Status, &b.PaymentStatus,
		&contact, &counts, &passengers, &outbound, &inbound, &ancillaries,
		&b.TotalAmountVND, &paymentInfo, &deadline, &reason, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := unmarshalBookingBlobs(&b, contact, counts, passengers, outbound, inbound, ancillaries, paymentInfo); err != nil {
		return nil, fmt.Errorf("decode booking %s: %w", b.OrderCode, err)
	}
	if reason != nil {
		b.CancellationReason = *reason
	}
	if deadline != nil {
		b.PaymentDeadline = *deadline
	}
	return &b, nil
}

func unmarshalBookingBlobs(b *domain.Booking, contact, counts, passengers, outbound, inbound, ancillaries, paymentInfo []byte) error {
	if err := json.Unmarshal(contact, &b.Contact); err != nil {
		return err
	}
	if err := json.Unmarshal(counts, &b.Counts); err != nil {
		return err
	}
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return err
	}
	if len(outbound) > 0 {
		b.Outbound = &domain.FareOption{}
		if err := json.Unmarshal(outbound, b.Outbound); err != nil {
			return err
		}
	}
	if len(inbound) > 0 {
		b.Inbound = &domain.FareOption{}
		if err := json.Unmarshal(inbound, b.Inbound); err != nil {
			return err
		}
	}
	if len(ancillaries) > 0 {
		if err := json.Unmarshal(ancillaries, &b.Ancillaries); err != nil {
			return err
		}
	}
	if len(paymentInfo) > 0 {
		b.PaymentInfo = &domain.PaymentInfo{}
		if err := json.Unmarshal(paymentInfo, b.PaymentInfo); err != nil {
			return err
		}
	}
	return nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
