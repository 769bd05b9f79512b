package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/utils"
	"github.com/MKhiriev/go-image-keeper/models"
)

// localFileStorage is the directory backed implementation of [FileStorage].
//
// Every access goes through an [os.Root] opened on the upload directory, so
// a name can never resolve outside of it, symlinks included.
type localFileStorage struct {
	dir    string
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewLocalFileStorage constructs a [FileStorage] keeping files in dir.
// The directory is created on the first Save.
func NewLocalFileStorage(dir string, logger *logger.Logger) FileStorage {
	logger.Debug().Str("dir", dir).Msg("creating local file storage")
	return &localFileStorage{
		dir:    dir,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// Save writes content to a hidden temporary file and renames it over name.
func (s *localFileStorage) Save(ctx context.Context, name string, content io.Reader) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	if !isPlainName(name) {
		return models.StoredFile{}, fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return models.StoredFile{}, fmt.Errorf("error creating upload dir: %w", err)
	}

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("error opening upload dir: %w", err)
	}
	defer root.Close()

	tmpName := ".upload-" + s.ids.Generate() + ".tmp"
	tmp, err := root.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("error creating temp file: %w", err)
	}

	written, err := io.Copy(tmp, contextReader{ctx: ctx, r: content})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = root.Remove(tmpName)
		log.Err(err).Str("func", "*localFileStorage.Save").Str("file", name).Msg("error writing upload")
		return models.StoredFile{}, fmt.Errorf("error writing file: %w", err)
	}

	if err = root.Rename(tmpName, name); err != nil {
		_ = root.Remove(tmpName)
		return models.StoredFile{}, fmt.Errorf("error moving file into place: %w", err)
	}

	info, err := root.Stat(name)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("error reading stored file: %w", err)
	}

	stored := storedFileFromInfo(info)
	stored.Size = written
	return stored, nil
}

// List returns the regular files of the upload directory.
func (s *localFileStorage) List(ctx context.Context) ([]models.StoredFile, error) {
	root, err := os.OpenRoot(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.StoredFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening upload dir: %w", err)
	}
	defer root.Close()

	entries, err := fs.ReadDir(root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("error reading upload dir: %w", err)
	}

	files := make([]models.StoredFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, storedFileFromInfo(info))
	}

	return files, nil
}

// Open opens name for reading. The returned Body is an *os.File and thus
// also an io.ReadSeeker.
func (s *localFileStorage) Open(ctx context.Context, name string) (models.FileObject, error) {
	if !isPlainName(name) {
		return models.FileObject{}, ErrFileNotFound
	}

	root, err := os.OpenRoot(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return models.FileObject{}, ErrFileNotFound
	}
	if err != nil {
		return models.FileObject{}, fmt.Errorf("error opening upload dir: %w", err)
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.FileObject{}, ErrFileNotFound
		}
		return models.FileObject{}, fmt.Errorf("error opening file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return models.FileObject{}, fmt.Errorf("error reading file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return models.FileObject{}, ErrFileNotFound
	}

	return models.FileObject{StoredFile: storedFileFromInfo(info), Body: f}, nil
}

func storedFileFromInfo(info fs.FileInfo) models.StoredFile {
	return models.StoredFile{
		Name:        info.Name(),
		Size:        info.Size(),
		ContentType: contentTypeFor(info.Name()),
		ModTime:     info.ModTime(),
	}
}

// contentTypeFor derives the MIME type from the file extension.
func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}

	return "application/octet-stream"
}

// isPlainName reports whether name is a single, non-hidden path element.
func isPlainName(name string) bool {
	return name != "" && name[0] != '.' && fs.ValidPath(name) && path.Base(name) == name
}

// contextReader stops a copy once ctx is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
