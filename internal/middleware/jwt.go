package middleware // middleware contains reusable HTTP middleware functions

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/mateen/socialnet/internal/model"
)

// principalKey is the context key under which the resolved Principal is
// stored. Handlers retrieve it through PrincipalFrom and pass it to
// every operation explicitly; nothing reads ambient auth state.
const principalKey = "principal"

// Principal is the authenticated user executing the request. Only the
// fields operations authorize against are carried.
type Principal struct {
	ID    uint64
	Email string
}

// PrincipalResolver loads a user by the email claim of a verified
// token. Satisfied by *repository.UserRepo.
type PrincipalResolver interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// resolves the token's email claim to a user row and injects the resulting
// Principal into the request context. Tokens that fail the signature check
// or are past expiry are rejected, as are tokens whose user no longer has
// active status. The provided secret must match the one used when issuing
// tokens.
func JWTAuth(secret string, users PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret. The callback supplies the
			// signing key and rejects any non-HMAC algorithm; jwt.Parse
			// validates the exp claim on its own.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			email, _ := claims["email"].(string)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// The token only names an email; the principal id and status
			// live in the users table.
			u, err := users.GetByEmail(c.Request().Context(), email)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			if u.Status != model.UserStatusActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user is not active"})
			}

			c.Set(principalKey, Principal{ID: u.ID, Email: u.Email})
			return next(c)
		}
	}
}

// PrincipalFrom extracts the Principal stored by JWTAuth. The boolean
// is false when the middleware did not run on this route.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}
