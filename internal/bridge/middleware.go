package bridge

import (
	"net/http"
	"strings"

	"github.com/ytget/ytdl-desktop/internal/logging"
)

// CORSMiddleware admits browser requests from the allowed origins only.
// "*" admits every origin. Requests without an Origin header pass through.
func CORSMiddleware(allowed []string, next http.Handler) http.Handler {
	origins := map[string]struct{}{}
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o != "" {
			origins[o] = struct{}{}
		}
	}

	_, allowAll := origins["*"]

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if _, ok := origins[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			} else {
				logging.Warn("origin denied", logging.Fields{logging.FieldOrigin: origin})
				http.Error(w, "CORS origin denied", http.StatusForbidden)
				return
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
