package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsPolicy admits the desktop webview (e.g. tauri://localhost). The API
// carries no cookies, so credentials stay off.
func corsPolicy(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		CustomSchemas:    customSchemas(origins),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}
}

// createCORSMiddleware returns nil when CORS is off or the origin list is empty.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled without any origin, skipping middleware")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))
	return cors.New(corsPolicy(origins))
}

// parseOrigins splits a comma-separated list, trimming blanks and duplicates.
func parseOrigins(raw string) []string {
	var origins []string
	for part := range strings.SplitSeq(raw, ",") {
		origin := strings.TrimSpace(part)
		if origin != "" && !slices.Contains(origins, origin) {
			origins = append(origins, origin)
		}
	}
	return origins
}

// customSchemas collects non-http schemes such as "tauri://", which cors
// rejects unless they are declared.
func customSchemas(origins []string) []string {
	var schemas []string
	for _, origin := range origins {
		scheme, _, ok := strings.Cut(origin, "://")
		if !ok || scheme == "http" || scheme == "https" {
			continue
		}
		if s := scheme + "://"; !slices.Contains(schemas, s) {
			schemas = append(schemas, s)
		}
	}
	return schemas
}
