package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"lab-inventory/internal/domain/apperr"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
	provisionalLockTTL = 60 * time.Second
)

var (
	ErrIdempotencyKeyInvalid = apperr.Validation("invalid_idempotency_key", "Idempotency-Key must be 8-128 characters of [A-Za-z0-9-_:].")
	ErrIdempotencyKeyReused  = apperr.New(apperr.KindConflict, "idempotency_key_reused", "Idempotency-Key reused with a different body.")
	ErrRequestInProgress     = apperr.New(apperr.KindConflict, "request_in_progress", "A request with this Idempotency-Key is already in progress.")
	ErrIdempotencyStore      = apperr.New(apperr.KindContention, "idempotency_unavailable", "Idempotency store unavailable, retry shortly.")
)

type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency replays the stored response of a mutating request that carries
// an Idempotency-Key already seen for the same actor and route. Requests
// without the header pass straight through. Server errors are not stored, so
// the client may retry them under the same key.
func Idempotency(rdb redis.UniversalClient, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			raw := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if raw == "" {
				return next(c)
			}
			if !validKey(raw) {
				return ErrIdempotencyKeyInvalid
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			owner := "anonymous"
			if a, ok := ActorFrom(c); ok {
				owner = a.ID
			}
			key := buildKey(req.Method, c.Path(), owner, raw)

			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			ok, cur, err := claim(ctx, rdb, key, idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: nowUTC()})
			switch {
			case errors.Is(err, redis.Nil):
				return ErrRequestInProgress
			case err != nil:
				return ErrIdempotencyStore.WithCause(err)
			}
			if !ok {
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return ErrIdempotencyKeyReused
				}
				if !cur.InProgress && cur.Code != 0 {
					c.Response().Header().Set("Idempotent-Replayed", "true")
					return c.Blob(cur.Code, echo.MIMEApplicationJSONCharsetUTF8, cur.Body)
				}
				return ErrRequestInProgress
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.code >= http.StatusInternalServerError {
				if err := release(context.Background(), rdb, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("idempotency: release")
				}
				return nil
			}
			final := idempEntry{Code: rec.code, Body: rec.buf.Bytes(), BodySHA256: bhash, CreatedAt: nowUTC()}
			if err := saveFinal(context.Background(), rdb, key, final, ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency: save final")
			}
			return nil
		}
	}
}
