package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rsrujukan/hospital/internal/platform/auth"
)

// AccessEntry captures who touched what through the HTTP surface: actor,
// entity kind, action, and outcome.
type AccessEntry struct {
	ActorID    string
	ActorRoles []string
	EntityKind string
	Action     string // read, create, update, delete
	IPAddress  string
	Path       string
	Method     string
	Timestamp  time.Time
	RequestID  string
	StatusCode int
}

// AccessTrail returns middleware that emits a structured access-trail log
// line for every API request. It runs the handler first so the response
// status is captured. This trail complements the persisted audit log written
// by the domain services; it never fails the request.
func AccessTrail(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			err := next(c)

			entry := AccessEntry{
				Timestamp:  time.Now().UTC(),
				Path:       req.URL.Path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				StatusCode: c.Response().Status,
			}

			ctx := req.Context()
			entry.ActorID = auth.ActorFromContext(ctx)
			entry.ActorRoles = auth.RolesFromContext(ctx)

			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			entry.Action = httpMethodToAction(req.Method)
			entry.EntityKind = extractEntityKind(req.URL.Path)

			logger.Info().
				Str("type", "access_trail").
				Str("request_id", entry.RequestID).
				Str("actor_id", entry.ActorID).
				Strs("actor_roles", entry.ActorRoles).
				Str("entity", entry.EntityKind).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("access")

			return err
		}
	}
}

// httpMethodToAction maps HTTP methods to audit action verbs.
func httpMethodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// extractEntityKind parses the first path segment, e.g. /admissions/123 ->
// admissions.
func extractEntityKind(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		return segments[0]
	}
	return "unknown"
}
