package jwks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dropDatabas3/jwksverify/internal/util/atomicwrite"
)

// DocumentStore persiste el documento JWKS crudo.
// La existencia del documento es la única señal de frescura: no hay TTL.
type DocumentStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	// Location describe dónde vive name (ruta o clave), para logs y CLI.
	Location(name string) string
}

// FileStore guarda documentos como archivos dentro de Dir.
type FileStore struct {
	Dir string
}

// NewFileStore crea un store de archivos. Dir vacío = directorio de trabajo.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{Dir: dir}
}

func (s *FileStore) Location(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *FileStore) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(s.Location(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", s.Location(name), err)
	}
}

func (s *FileStore) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(s.Location(name))
}

func (s *FileStore) Write(_ context.Context, name string, data []byte) error {
	return atomicwrite.WriteFile(s.Location(name), data, 0o644)
}

