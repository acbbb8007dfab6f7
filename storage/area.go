// Package storage manages the upload folder shared by the HTTP handlers and
// the retention sweeper.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDirPermissions for the storage directory
	DefaultDirPermissions = 0755

	pdfExt       = ".pdf"
	outputSuffix = "_shrunk"
)

// Role tells whether a stored file was uploaded or produced by Ghostscript.
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

// StoredFile is a single file in the storage area.
type StoredFile struct {
	ID      string
	Path    string
	Role    Role
	ModTime time.Time
}

// Area is a directory holding uploaded and shrunk PDFs, named after a
// per-upload identifier.
type Area struct {
	dir string
}

// NewArea returns an Area rooted at dir, creating the directory if needed.
func NewArea(dir string) (*Area, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory must not be empty")
	}
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &Area{dir: dir}, nil
}

// Dir returns the directory backing the area.
func (a *Area) Dir() string {
	return a.dir
}

// NewID generates a fresh identifier for an upload.
func (a *Area) NewID() string {
	return uuid.NewString()
}

// InputPath is where the upload with the given id is stored.
func (a *Area) InputPath(id string) string {
	return filepath.Join(a.dir, id+pdfExt)
}

// OutputPath is where the shrunk result for the given id is written.
func (a *Area) OutputPath(id string) string {
	return filepath.Join(a.dir, id+outputSuffix+pdfExt)
}

// SaveInput copies r into the input file for id and returns the stored file.
// A partially written file is removed on error.
func (a *Area) SaveInput(id string, r io.Reader) (*StoredFile, error) {
	path := a.InputPath(id)

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return a.Stat(path)
}

// Stat describes the file at path, which must live in the area.
func (a *Area) Stat(path string) (*StoredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	f := describe(path, info)
	return &f, nil
}

// Size returns the size in bytes of the file at path.
func (a *Area) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// List returns every regular file in the area. Subdirectories are skipped.
func (a *Area) List() ([]StoredFile, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory %s: %w", a.dir, err)
	}

	files := make([]StoredFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, describe(filepath.Join(a.dir, entry.Name()), info))
	}
	return files, nil
}

// Remove deletes the file at path.
func (a *Area) Remove(path string) error {
	return os.Remove(path)
}

func describe(path string, info os.FileInfo) StoredFile {
	id := strings.TrimSuffix(info.Name(), filepath.Ext(info.Name()))
	role := RoleInput
	if strings.HasSuffix(id, outputSuffix) {
		id = strings.TrimSuffix(id, outputSuffix)
		role = RoleOutput
	}
	return StoredFile{
		ID:      id,
		Path:    path,
		Role:    role,
		ModTime: info.ModTime(),
	}
}
