package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"lab-inventory/internal/domain/apperr"
	"lab-inventory/internal/domain/user"
)

const actorKey = "actor"

var ErrForbidden = apperr.New(apperr.KindAuthorization, "forbidden", "Insufficient permissions.")

// Authenticator turns a bearer token into the calling actor.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (user.Actor, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// resolved actor on the context.
func JWTAuth(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return user.ErrUnauthenticated
			}
			actor, err := a.Authenticate(c.Request().Context(), strings.TrimSpace(raw))
			if err != nil {
				return err
			}
			SetActor(c, actor)
			return next(c)
		}
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	allowed := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return user.ErrUnauthenticated
			}
			if !allowed[actor.Role] {
				return ErrForbidden
			}
			return next(c)
		}
	}
}

func SetActor(c echo.Context, a user.Actor) { c.Set(actorKey, a) }

func ActorFrom(c echo.Context) (user.Actor, bool) {
	a, ok := c.Get(actorKey).(user.Actor)
	return a, ok
}
