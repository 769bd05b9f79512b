package models

import (
	"io"
	"time"
)

// FileUpload is a single file submission received from a client.
// Filename is the name supplied by the client and is not trusted.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// StoredFile describes an image that has been persisted to the managed
// storage location under its sanitized name.
type StoredFile struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ModTime     time.Time `json:"mod_time"`
}

// FileObject is a [StoredFile] opened for reading.
// Callers must close Body.
type FileObject struct {
	StoredFile
	Body io.ReadCloser
}
