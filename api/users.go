package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/repository"
	"github.com/dmtran91/flybooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup, authed *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/admin/login", h.adminLogin)
	authed.GET("/me", h.me)
}

type userResponse struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	IDCard        string `json:"id_card,omitempty"`
	Role          string `json:"role"`
	LoyaltyPoints int64  `json:"loyalty_points"`
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		IDCard:        u.IDCard,
		Role:          string(u.Role),
		LoyaltyPoints: u.LoyaltyPoints,
	}
	if u.DateOfBirth != nil {
		resp.DateOfBirth = u.DateOfBirth.Format("2006-01-02")
	}
	return resp
}

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	IDCard      string `json:"id_card,omitempty"`
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := users.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		IDCard:   req.IDCard,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date of birth, use YYYY-MM-DD"})
			return
		}
		input.DateOfBirth = &dob
	}

	user, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, repository.ErrEmailTaken) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) login(c *gin.Context) {
	h.doLogin(c, h.service.Login)
}

func (h *UserHandler) adminLogin(c *gin.Context) {
	h.doLogin(c, h.service.AdminLogin)
}

func (h *UserHandler) doLogin(c *gin.Context, login func(ctx context.Context, email, password string) (string, *domain.User, error)) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, users.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserResponse(user)})
}

func (h *UserHandler) me(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), claims.UserID())
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
