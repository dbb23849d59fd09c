// Package storage persists uploaded files on local disk. Entities only
// ever store the relative path (e.g. "rooms/ab12cd.png"); the bytes are
// never inspected here beyond copying them out of the request.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/mateen/socialnet/internal/utils"
)

// FileStore writes uploads under a base directory, namespaced per
// entity kind ("rooms", "stories"). Each file gets a random name so
// uploads can never collide or overwrite each other.
type FileStore struct {
	BaseDir string
}

func NewFileStore(baseDir string) *FileStore { return &FileStore{BaseDir: baseDir} }

// Save stores the uploaded file under <base>/<namespace>/<random><ext>
// and returns the relative path to record on the entity.
func (s *FileStore) Save(file *multipart.FileHeader, namespace string) (string, error) {
	name, err := utils.RandomName(16)
	if err != nil {
		return "", err
	}
	rel := filepath.Join(namespace, name+filepath.Ext(file.Filename))

	dir := filepath.Join(s.BaseDir, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.BaseDir, rel))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return rel, nil
}
