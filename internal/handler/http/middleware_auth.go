package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/utils"
	"github.com/MKhiriev/go-image-keeper/models"
)

const sessionCookieName = "session"

// auth returns the login gate middleware.
//
// It reads the "session" cookie and resolves it via
// [service.AuthService.Authenticate]. On success the user and the session are
// stored in the request context (see [utils.WithUser]) and the request logger
// is enriched with the user id.
//
// Anonymous requests are redirected (303) to loginURL with the original
// request URI in the "next" query parameter and the flash
// "Please log in to access this page." is set. A stale cookie is cleared.
// With an empty loginURL the gate answers 401 instead.
//
// Storage failures while resolving the session render a 500 page.
func (h *Handler) auth(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromRequest(r)

			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				h.denyAnonymous(w, r, loginURL)
				return
			}

			user, session, err := h.services.AuthService.Authenticate(ctx, cookie.Value)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					log.Info().Msg("session cookie rejected")
					h.clearSessionCookie(w)
					h.denyAnonymous(w, r, loginURL)
					return
				}
				h.renderError(w, r, err)
				return
			}

			ctx = utils.WithUser(ctx, user, session)
			ctx = log.WithUserID(user.UserID).WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) denyAnonymous(w http.ResponseWriter, r *http.Request, loginURL string) {
	if loginURL == "" {
		h.renderError(w, r, service.ErrUnauthorized)
		return
	}

	h.flashes.add(w, r, models.Flash{Category: models.FlashInfo, Message: "Please log in to access this page."})

	target := loginURL + "?" + url.Values{"next": {r.URL.RequestURI()}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, session models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
