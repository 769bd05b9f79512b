package view

import "github.com/MKhiriev/go-image-keeper/models"

// Page names understood by the default renderer.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageLogin    = "login"
	PageUpload   = "upload"
	PageFiles    = "files"
	PageNotFound = "404"
	PageError    = "error"
)

// Page is the data handed to every template.
type Page struct {
	Title string

	// User is the logged in user, nil for anonymous visitors.
	User    *models.User
	Flashes []models.Flash

	// Errors holds validation messages keyed by form field name.
	Errors map[string][]string

	// Username echoes the submitted login name back into the form.
	Username string
	// Next is the local path to return to after a successful login.
	Next string

	AboutName string
	Files     []models.StoredFile

	Status     int
	StatusText string
}

// FieldErrors returns the validation messages of a single form field.
func (p Page) FieldErrors(field string) []string {
	return p.Errors[field]
}

// AddFieldError records a validation message for field.
func (p *Page) AddFieldError(field, message string) {
	if p.Errors == nil {
		p.Errors = make(map[string][]string)
	}
	p.Errors[field] = append(p.Errors[field], message)
}
