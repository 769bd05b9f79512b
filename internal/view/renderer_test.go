package view

import (
	"bytes"
	"testing"

	"github.com/MKhiriev/go-image-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page string, data Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page, data))
	return buf.String()
}

func TestNewRenderer_ParsesAllPages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range pageNames {
		var buf bytes.Buffer
		assert.NoError(t, r.Render(&buf, name, Page{}), name)
		assert.Contains(t, buf.String(), "<!DOCTYPE html>", name)
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "missing", Page{})
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestRender_Navigation(t *testing.T) {
	anonymous := render(t, PageHome, Page{})
	assert.Contains(t, anonymous, `href="/login"`)
	assert.NotContains(t, anonymous, `href="/logout"`)

	loggedIn := render(t, PageHome, Page{User: &models.User{Username: "alice"}})
	assert.Contains(t, loggedIn, `href="/logout"`)
	assert.Contains(t, loggedIn, "alice")
}

func TestRender_FlashesAreEscaped(t *testing.T) {
	out := render(t, PageHome, Page{Flashes: []models.Flash{
		{Category: models.FlashDanger, Message: "<script>alert(1)</script>"},
	}})

	assert.Contains(t, out, "flash-danger")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestRender_About(t *testing.T) {
	assert.Contains(t, render(t, PageAbout, Page{AboutName: "Mary Jane"}), "Mary Jane")
}

func TestRender_LoginFieldErrors(t *testing.T) {
	p := Page{Username: "bob", Next: "/files"}
	p.AddFieldError("password", "This field is required.")

	out := render(t, PageLogin, p)
	assert.Contains(t, out, `value="bob"`)
	assert.Contains(t, out, `name="next" value="/files"`)
	assert.Contains(t, out, "This field is required.")
}

func TestRender_Files(t *testing.T) {
	out := render(t, PageFiles, Page{Files: []models.StoredFile{
		{Name: "my cat.png", Size: 2048},
	}})

	assert.Contains(t, out, `/uploads/my%20cat.png`)
	assert.Contains(t, out, "2.0 KiB")

	assert.Contains(t, render(t, PageFiles, Page{}), "No images uploaded yet")
}

func TestRender_ErrorPage(t *testing.T) {
	out := render(t, PageError, Page{Status: 413, StatusText: "Request Entity Too Large"})
	assert.Contains(t, out, "413 - Request Entity Too Large")
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSize(tt.size))
	}
}

func TestPage_FieldErrors(t *testing.T) {
	var p Page
	assert.Nil(t, p.FieldErrors("file"))

	p.AddFieldError("file", "a")
	p.AddFieldError("file", "b")
	assert.Equal(t, []string{"a", "b"}, p.FieldErrors("file"))
}
