package http

import (
	"net/http"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
)

// withHeaders forces the latest IE rendering engine (or Chrome Frame) and
// makes clients revalidate every response.
func withHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-UA-Compatible", "IE=Edge,chrome=1")
		w.Header().Set("Cache-Control", "public, max-age=0")
		next.ServeHTTP(w, r)
	})
}

// withCrossOriginProtection rejects unsafe requests whose Sec-Fetch-Site or
// Origin header shows they come from another site.
func (h *Handler) withCrossOriginProtection(next http.Handler) http.Handler {
	protection := http.NewCrossOriginProtection()
	protection.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Warn().
			Str("origin", r.Header.Get("Origin")).
			Str("sec_fetch_site", r.Header.Get("Sec-Fetch-Site")).
			Msg("cross-origin request rejected")
		h.renderError(w, r, errCrossOriginRequest)
	}))

	return protection.Handler(next)
}
