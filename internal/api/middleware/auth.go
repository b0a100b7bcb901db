package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// PrincipalKey is the echo context key holding the caller's domain.Principal.
const PrincipalKey = "principal"

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")

// Auth validates the bearer JWT and stores the resolved Principal in the
// context. Every failure yields the same 401 so callers learn nothing about
// why a token was refused.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return errUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return errUnauthorized
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return errUnauthorized
			}

			p := principalFromClaims(claims)
			if !p.Authenticated() {
				return errUnauthorized
			}

			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

func principalFromClaims(claims jwt.MapClaims) domain.Principal {
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return domain.Principal{
		UserID: sub,
		Role:   domain.Role(role),
		Email:  email,
		Name:   name,
	}
}

// PrincipalFrom returns the Principal stored by Auth, or the zero value.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, _ := c.Get(PrincipalKey).(domain.Principal)
	return p
}
