package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File persists each slot as one file under a data directory. Writes go to a
// temp file first and land with an atomic rename, so a crash leaves either
// the old slot or the new one, never a corrupt one.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile ensures the data directory exists and returns a file backend.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	// Slot keys are flat identifiers; strip separators so a key can never
	// escape the data directory.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}

func (f *File) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (f *File) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
