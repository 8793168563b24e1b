package meta

import (
	"fmt"
	"os"
	"path/filepath"
)

// KV is the narrow key-value port the simulation's meta-progression is
// persisted through. Get reports found=false for a missing key instead of an
// error, so callers can fall back to a zero-state without inspecting errors.
type KV interface {
	Get(key string) (blob []byte, found bool, err error)
	Set(key string, blob []byte) error
}

// FileKV stores each key as <dir>/<key>.json with atomic replace-on-write.
type FileKV struct {
	Dir string
}

func NewFileKV(dir string) *FileKV {
	return &FileKV{Dir: dir}
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f *FileKV) Get(key string) ([]byte, bool, error) {
	blob, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return blob, true, nil
}

func (f *FileKV) Set(key string, blob []byte) error {
	if f.Dir != "" {
		if err := os.MkdirAll(f.Dir, 0o755); err != nil {
			return fmt.Errorf("ensure store dir: %w", err)
		}
	}

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write %s temp file: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s temp file: %w", key, err)
	}
	return nil
}

// MemKV is an in-memory store for tests.
type MemKV struct {
	m map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string][]byte)}
}

func (s *MemKV) Get(key string) ([]byte, bool, error) {
	blob, ok := s.m[key]
	return blob, ok, nil
}

func (s *MemKV) Set(key string, blob []byte) error {
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.m[key] = cp
	return nil
}
