package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/repository"
	"github.com/dmtran91/flybooking/internal/service/booking"
	"github.com/dmtran91/flybooking/internal/ticket"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookingResponse struct {
	OrderCode          string                      `json:"order_code"`
	PNR                string                      `json:"pnr"`
	Status             string                      `json:"status"`
	PaymentStatus      string                      `json:"payment_status"`
	Contact            domain.Contact              `json:"contact"`
	Counts             domain.PassengerCounts      `json:"counts"`
	Passengers         []domain.Passenger          `json:"passengers"`
	Outbound           *domain.FareOption          `json:"outbound"`
	Inbound            *domain.FareOption          `json:"inbound,omitempty"`
	Ancillaries        []domain.AncillarySelection `json:"ancillaries,omitempty"`
	TotalAmount        int64                       `json:"total_amount"`
	PaymentInfo        *domain.PaymentInfo         `json:"payment_info,omitempty"`
	PaymentDeadline    string                      `json:"payment_deadline,omitempty"`
	CancellationReason string                      `json:"cancellation_reason,omitempty"`
	CreatedAt          string                      `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		OrderCode:          b.OrderCode,
		PNR:                b.PNR,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Contact:            b.Contact,
		Counts:             b.Counts,
		Passengers:         b.Passengers,
		Outbound:           b.Outbound,
		Inbound:            b.Inbound,
		Ancillaries:        b.Ancillaries,
		TotalAmount:        b.TotalAmountVND,
		PaymentInfo:        b.PaymentInfo,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}
	if !b.PaymentDeadline.IsZero() {
		resp.PaymentDeadline = b.PaymentDeadline.Format(time.RFC3339)
	}
	return resp
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register wires the public booking routes plus the authenticated "my
// bookings" listing.
func (h *BookingHandler) Register(router *gin.RouterGroup, authed *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:code", h.get)
	router.GET("/:code/ticket", h.eticket)
	authed.GET("/", h.listMine)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The session, when present, wins over any client-supplied user id.
	req.UserID = 0
	if claims := sessionClaims(c); claims != nil {
		req.UserID = claims.UserID()
	}

	created, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("code"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) eticket(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("code"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	pdf, err := ticket.Render(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="eticket-`+b.PNR+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *BookingHandler) listMine(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), claims.UserID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}
