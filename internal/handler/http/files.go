package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/view"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) files(w http.ResponseWriter, r *http.Request) {
	files, err := h.services.FileService.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, view.PageFiles, view.Page{Title: "Files", Files: files})
}

// image streams a stored image. Seekable bodies go through
// [http.ServeContent], which adds range and conditional request support.
func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	obj, err := h.services.FileService.Open(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if rs, ok := obj.Body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, obj.Name, obj.ModTime, rs)
		return
	}

	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if !obj.ModTime.IsZero() {
		w.Header().Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	if _, err = io.Copy(w, obj.Body); err != nil {
		log.Err(err).Str("file", obj.Name).Msg("error streaming image")
	}
}
