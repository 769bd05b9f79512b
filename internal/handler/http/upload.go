package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/view"
	"github.com/MKhiriev/go-image-keeper/models"
)

const (
	uploadField      = "file"
	uploadFieldLabel = "Upload Image"

	// multipart parts above this size are spooled to temporary files
	multipartMemory = 8 << 20
)

var uploadErrorMessages = map[error]string{
	service.ErrFileRequired:    "Please select a file to upload.",
	service.ErrUnsupportedType: "Only JPG and PNG files are allowed.",
}

func (h *Handler) uploadForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageUpload, view.Page{Title: "Upload"})
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if h.maxUploadSize > 0 {
		// a declared length can be judged before parsing; the reader limit
		// covers chunked bodies
		if r.ContentLength > h.maxUploadSize {
			log.Info().
				Int64("limit", h.maxUploadSize).
				Int64("content_length", r.ContentLength).
				Msg("upload rejected: request body too large")
			h.renderError(w, r, errRequestTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	upload, cleanup, err := readUpload(r)
	defer cleanup()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Info().Int64("limit", tooLarge.Limit).Msg("upload rejected: request body too large")
			h.renderError(w, r, errRequestTooLarge)
			return
		}
		log.Err(err).Msg("error reading multipart form")
		h.renderError(w, r, service.ErrInvalidDataProvided)
		return
	}

	stored, err := h.services.FileService.Upload(ctx, upload)
	if err != nil {
		for target, message := range uploadErrorMessages {
			if errors.Is(err, target) {
				page := view.Page{Title: "Upload"}
				page.AddFieldError(uploadField, message)
				page.Flashes = append(page.Flashes, models.Flash{
					Category: models.FlashDanger,
					Message:  "Error in the " + uploadFieldLabel + " field - " + message,
				})
				h.render(w, r, http.StatusBadRequest, view.PageUpload, page)
				return
			}
		}

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderError(w, r, errRequestTooLarge)
			return
		}

		log.Err(err).Msg("unexpected error occurred during upload")
		h.renderError(w, r, err)
		return
	}

	log.Debug().Str("file", stored.Name).Msg("upload stored")

	h.flashes.add(w, r, models.Flash{Category: models.FlashSuccess, Message: "File uploaded successfully!"})
	http.Redirect(w, r, "/upload", http.StatusSeeOther)
}

// readUpload parses the multipart body and opens the "file" part. A missing
// part yields an empty upload, which the file service rejects. cleanup is
// never nil.
func readUpload(r *http.Request) (models.FileUpload, func(), error) {
	cleanup := func() {}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return models.FileUpload{}, cleanup, nil
		}
		return models.FileUpload{}, cleanup, err
	}

	form := r.MultipartForm
	cleanup = func() { _ = form.RemoveAll() }

	file, header, err := r.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) {
		return models.FileUpload{}, cleanup, nil
	}
	if err != nil {
		return models.FileUpload{}, cleanup, err
	}

	cleanup = func() {
		_ = file.Close()
		_ = form.RemoveAll()
	}

	return models.FileUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, cleanup, nil
}
