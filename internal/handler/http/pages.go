package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/utils"
	"github.com/MKhiriev/go-image-keeper/internal/view"
	"github.com/MKhiriev/go-image-keeper/models"
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageHome, view.Page{})
}

func (h *Handler) about(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageAbout, view.Page{
		Title:     "About",
		AboutName: h.services.AppInfoService.GetAboutName(r.Context()),
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, view.PageNotFound, view.Page{Title: "Not Found"})
}

// render executes the page template into a buffer and writes it with status.
// Pending flashes and the current user are added to data.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.Page) {
	log := logger.FromRequest(r)

	data.Flashes = append(h.flashes.pop(w, r), data.Flashes...)
	if data.User == nil {
		data.User = h.currentUser(r)
	}

	var buf bytes.Buffer
	if err := h.views.Render(&buf, page, data); err != nil {
		log.Err(err).Str("page", page).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Err(err).Str("page", page).Msg("error writing page")
	}
}

// renderError renders the page matching err's status.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusNotFound {
		h.notFound(w, r)
		return
	}

	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
	}

	h.render(w, r, status, view.PageError, view.Page{
		Title:      http.StatusText(status),
		Status:     status,
		StatusText: http.StatusText(status),
	})
}

// currentUser returns the user put into the context by the login gate or,
// on public pages, the owner of a valid session cookie. Nil means anonymous.
func (h *Handler) currentUser(r *http.Request) *models.User {
	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		return &user
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	user, _, err := h.services.AuthService.Authenticate(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, service.ErrUnauthorized) {
			logger.FromRequest(r).Err(err).Msg("error resolving session cookie")
		}
		return nil
	}

	return &user
}
