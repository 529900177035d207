// SPDX-License-Identifier: EPL-2.0

package server

import (
	"net/http"
	"slices"
	"strings"
)

// cors adds Access-Control headers for allowed origins and answers
// preflight requests. "*" in origins allows any origin.
func cors(origins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(origins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" || !corsPath(r.URL.Path) || (!allowAll && !slices.Contains(origins, origin)) {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// corsPath reports whether browsers call path cross-origin.
func corsPath(path string) bool {
	return path == "/upload" || path == "/remove" || strings.HasPrefix(path, "/api/")
}
