package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const loginPath = "/login"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withHeaders)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.withCrossOriginProtection)

	// pages without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Get("/", h.home)
		r.Get("/about/", h.about)
		r.Get("/login", h.loginForm)
		r.Post("/login", h.login)
	})
	router.Get("/version", h.getServerVersion)

	// pages behind the login gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth(loginPath))
		r.Use(withGZip)
		r.Get("/logout", h.logout)
		r.Get("/upload", h.uploadForm)
		r.Post("/upload", h.upload)
		r.Get("/files", h.files)
	})

	// image bytes are served uncompressed so that range requests keep working
	router.Group(func(r chi.Router) {
		if h.protectUploads {
			r.Use(h.auth(loginPath))
		}
		r.Get("/uploads/{filename}", h.image)
		r.Head("/uploads/{filename}", h.image)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, h.notFound))

	return router
}
