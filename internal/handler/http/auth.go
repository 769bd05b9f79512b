package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/utils"
	"github.com/MKhiriev/go-image-keeper/internal/view"
	"github.com/MKhiriev/go-image-keeper/models"
)

const (
	defaultLoginRedirect = "/upload"
	fieldRequired        = "This field is required."
)

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageLogin, view.Page{
		Title: "Login",
		Next:  safeNext(r.URL.Query().Get("next")),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		h.renderError(w, r, service.ErrInvalidDataProvided)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	next := safeNext(r.PostForm.Get("next"))
	if next == "" {
		next = safeNext(r.URL.Query().Get("next"))
	}

	page := view.Page{Title: "Login", Username: username, Next: next}
	if username == "" {
		page.AddFieldError("username", fieldRequired)
	}
	if password == "" {
		page.AddFieldError("password", fieldRequired)
	}
	if len(page.Errors) > 0 {
		h.render(w, r, http.StatusBadRequest, view.PageLogin, page)
		return
	}

	session, err := h.services.AuthService.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			page.Flashes = append(page.Flashes, models.Flash{Category: models.FlashDanger, Message: "Invalid username or password."})
			h.render(w, r, http.StatusUnauthorized, view.PageLogin, page)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.render(w, r, http.StatusBadRequest, view.PageLogin, page)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			h.renderError(w, r, err)
			return
		}
	}

	h.setSessionCookie(w, session)
	h.flashes.add(w, r, models.Flash{Category: models.FlashSuccess, Message: "Successfully logged in!"})

	if next == "" {
		next = defaultLoginRedirect
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(ctx)
	if err := h.services.AuthService.Logout(ctx, session.ID); err != nil {
		log.Err(err).Msg("error deleting session")
		h.renderError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	h.flashes.add(w, r, models.Flash{Category: models.FlashInfo, Message: "You have been logged out."})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeNext returns target when it is a local path, otherwise "".
func safeNext(target string) string {
	if utils.IsSafeRedirect(target) {
		return target
	}
	return ""
}
