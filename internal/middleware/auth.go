package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/warunggenz/pos-backend/internal/domain"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

const actorContextKey = "actor"

// JWTAuth validates the bearer token issued by the identity provider and
// places the caller's Actor in the request context.
func JWTAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := parseActor(c, jwtSecret)
			if err != nil {
				return pkgdto.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			c.Set(actorContextKey, actor)

			return next(c)
		}
	}
}

// OptionalJWTAuth extracts the actor when a valid token is present but
// lets guest requests through. Used on the gateway checkout route.
func OptionalJWTAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := parseActor(c, jwtSecret)
			if err == nil {
				c.Set(actorContextKey, actor)
			}

			return next(c)
		}
	}
}

// RequireStaff gates cashier/owner-only routes.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !ExtractActor(c).IsStaff() {
			return pkgdto.WriteErrorResponse(c, errs.ErrForbidden, nil)
		}
		return next(c)
	}
}

func ExtractActor(c echo.Context) domain.Actor {
	actor, ok := c.Get(actorContextKey).(domain.Actor)
	if !ok {
		return domain.Actor{}
	}
	return actor
}

func parseActor(c echo.Context, jwtSecret string) (domain.Actor, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return domain.Actor{}, errs.ErrNotLoggedIn
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, errs.ErrNotLoggedIn
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, errs.ErrNotLoggedIn
	}

	userID, ok := claims["userID"].(float64)
	if !ok {
		return domain.Actor{}, errs.ErrNotLoggedIn
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return domain.Actor{
		ID:   int64(userID),
		Role: role,
		Name: name,
	}, nil
}
