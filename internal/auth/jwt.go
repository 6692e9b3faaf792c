package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the session context carried through request handlers. There is no
// ambient session state; handlers receive identity explicitly.
type Claims struct {
	Role  domain.Role `json:"role"`
	Email string      `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

func CreateAccessToken(secret string, user *domain.User, ttl time.Duration) (string, error) {
	claims := Claims{
		Role:  user.Role,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseValidate(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}
