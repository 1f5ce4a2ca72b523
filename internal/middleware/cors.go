package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"team-vote/pkg/logger"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig returns a default CORS configuration
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Cache-Control",
			"Last-Event-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
			RequestIDHeader,
		},
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}
}

// CORS answers cross-origin requests from the configured origins. An empty
// AllowedOrigins list admits any origin; "*" does the same with a literal
// wildcard. Origins outside the list get no CORS headers, which the browser
// treats as a refusal.
func CORS(config *CORSConfig, log *logger.Logger) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultCORSConfig()
	}

	wildcard := false
	allowed := make(map[string]struct{}, len(config.AllowedOrigins))
	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			wildcard = true
		}
		allowed[origin] = struct{}{}
	}

	originAllowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		if wildcard || len(allowed) == 0 {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}

	// Headers every allowed response carries, and the extra ones a preflight
	// answer needs.
	common := http.Header{}
	if config.AllowCredentials {
		common.Set("Access-Control-Allow-Credentials", "true")
	}
	if len(config.ExposedHeaders) > 0 {
		common.Set("Access-Control-Expose-Headers", strings.Join(config.ExposedHeaders, ", "))
	}

	preflight := http.Header{}
	if len(config.AllowedMethods) > 0 {
		preflight.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
	}
	if len(config.AllowedHeaders) > 0 {
		preflight.Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
	}
	if config.MaxAge > 0 {
		preflight.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			isPreflight := r.Method == http.MethodOptions

			h := w.Header()
			h.Add("Vary", "Origin")

			if originAllowed(origin) {
				if wildcard {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
				}
				copyHeader(h, common)
				if isPreflight {
					copyHeader(h, preflight)
				}
			} else if origin != "" {
				log.WithFields(map[string]interface{}{
					"origin": origin,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Debug("CORS origin not allowed")
			}

			if isPreflight {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func copyHeader(dst, src http.Header) {
	for k, v := range src {
		dst[k] = v
	}
}
