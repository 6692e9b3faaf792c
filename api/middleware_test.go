package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmtran91/flybooking/internal/auth"
	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func testToken(t *testing.T, role domain.Role) string {
	t.Helper()
	token, err := auth.CreateAccessToken(testSecret, &domain.User{ID: 7, Email: "a@example.com", Role: role}, time.Hour)
	assert.NoError(t, err)
	return token
}

func TestAuthRequired_missingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/my/bookings", nil)

	AuthRequired(testSecret, "")(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_validToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/my/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer "+testToken(t, domain.RoleCustomer))

	AuthRequired(testSecret, "")(c)

	assert.False(t, c.IsAborted())
	claims := sessionClaims(c)
	assert.NotNil(t, claims)
	assert.Equal(t, int64(7), claims.UserID())
}

func TestAuthRequired_roleMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/admin/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer "+testToken(t, domain.RoleCustomer))

	AuthRequired(testSecret, domain.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionalAuth_anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/bookings", nil)

	OptionalAuth(testSecret)(c)

	assert.False(t, c.IsAborted())
	assert.Nil(t, sessionClaims(c))
}

func TestOptionalAuth_withToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer "+testToken(t, domain.RoleCustomer))

	OptionalAuth(testSecret)(c)

	assert.False(t, c.IsAborted())
	assert.NotNil(t, sessionClaims(c))
}
