package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lab-inventory/internal/adapter/middleware"
	"lab-inventory/internal/domain/user"
)

const serviceName = "lab-inventory"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct{ db Pinger }

func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"ok":      true,
		"service": serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if h.db == nil || h.db.PingContext(ctx) != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"ok":       false,
			"service":  serviceName,
			"database": "unreachable",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"ok":       true,
		"service":  serviceName,
		"database": "reachable",
	})
}

func actorOf(c echo.Context) (user.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return user.Actor{}, user.ErrUnauthenticated
	}
	return a, nil
}
