package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/repository"
	"github.com/dmtran91/flybooking/internal/service/booking"
	"github.com/dmtran91/flybooking/internal/service/fees"
	"github.com/dmtran91/flybooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

// AdminHandler groups the back-office operations: booking management,
// payment processing, fee table edits and user administration.
type AdminHandler struct {
	bookings booking.BookingUseCase
	fees     fees.FeeUseCase
	users    users.UserUseCase
}

func NewAdminHandler(bookings booking.BookingUseCase, fees fees.FeeUseCase, users users.UserUseCase) *AdminHandler {
	return &AdminHandler{bookings: bookings, fees: fees, users: users}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.listBookings)
	router.POST("/bookings/:code/payment", h.processPayment)
	router.PUT("/bookings/:code/status", h.updateStatus)
	router.POST("/bookings/:code/cancel", h.cancel)
	router.DELETE("/bookings/:code", h.deleteBooking)

	router.GET("/fees", h.getFees)
	router.PUT("/fees/:scope", h.putFee)
	router.DELETE("/fees/:scope", h.deleteFee)

	router.GET("/users", h.listUsers)
	router.POST("/users/:id/loyalty", h.adjustLoyalty)
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	bookings, err := h.bookings.ListBookings(c.Request.Context())
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

func (h *AdminHandler) processPayment(c *gin.Context) {
	var req booking.PaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, warning, err := h.bookings.ProcessPayment(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, repository.ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"booking": toBookingResponse(updated)}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note,omitempty"`
}

func (h *AdminHandler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.bookings.UpdateStatus(c.Request.Context(), c.Param("code"), domain.BookingStatus(req.Status), req.Note)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, repository.ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

type cancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *AdminHandler) cancel(c *gin.Context) {
	// An empty body is fine: cancellation without a reason.
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := h.bookings.CancelBooking(c.Request.Context(), c.Param("code"), req.Reason)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, repository.ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *AdminHandler) deleteBooking(c *gin.Context) {
	if err := h.bookings.DeleteBooking(c.Request.Context(), c.Param("code")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) getFees(c *gin.Context) {
	c.JSON(http.StatusOK, h.fees.Current(c.Request.Context()))
}

func (h *AdminHandler) putFee(c *gin.Context) {
	var fee domain.FeeConfig
	if err := c.ShouldBindJSON(&fee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.fees.UpdateScope(c.Request.Context(), c.Param("scope"), fee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scope": c.Param("scope"), "fee": fee})
}

func (h *AdminHandler) deleteFee(c *gin.Context) {
	if err := h.fees.RemoveScope(c.Request.Context(), c.Param("scope")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	all, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]userResponse, 0, len(all))
	for i := range all {
		out = append(out, toUserResponse(&all[i]))
	}
	c.JSON(http.StatusOK, out)
}

type loyaltyRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

func (h *AdminHandler) adjustLoyalty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req loyaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.AdjustLoyalty(c.Request.Context(), id, req.Delta)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
