package api

import (
	"net/http"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/search", h.search)
	router.GET("/ancillaries", h.ancillaries)
}

type searchRequest struct {
	DepartureAirport string `json:"departure_airport" binding:"required"`
	ArrivalAirport   string `json:"arrival_airport" binding:"required"`
	DepartureDate    string `json:"departure_date" binding:"required"`
	ReturnDate       string `json:"return_date,omitempty"`
	Adults           int    `json:"adults"`
	Children         int    `json:"children"`
	Infants          int    `json:"infants"`
}

func (h *FlightHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	departureDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure date, use YYYY-MM-DD"})
		return
	}
	input := flights.SearchInput{
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		DepartureDate:    departureDate,
		Counts:           domain.PassengerCounts{Adults: req.Adults, Children: req.Children, Infants: req.Infants},
	}
	if req.ReturnDate != "" {
		returnDate, err := time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return date, use YYYY-MM-DD"})
			return
		}
		input.ReturnDate = &returnDate
	}

	result, err := h.service.Search(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) ancillaries(c *gin.Context) {
	options, err := h.service.Ancillaries(c.Request.Context(), c.Query("airline"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, options)
}
