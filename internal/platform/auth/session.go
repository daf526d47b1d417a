package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ownerIDKey = "owner_id"

// Claims carried by an owner session token. The subject is the owner's
// user id.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueSessionToken mints an HS256 session token for an authenticated owner.
func IssueSessionToken(secret []byte, ownerID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID.String(),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// SessionMiddleware authenticates requests with a Bearer session token and
// puts the owner id on the echo context. Requests without a valid token are
// rejected with 401.
func SessionMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			tokenStr := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ownerID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(ownerIDKey, ownerID)
			return next(c)
		}
	}
}

// OwnerID returns the authenticated owner id from the echo context.
func OwnerID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ownerIDKey).(uuid.UUID)
	return id, ok
}

// SetOwnerID puts an owner id on the context. Intended for tests.
func SetOwnerID(c echo.Context, id uuid.UUID) {
	c.Set(ownerIDKey, id)
}
