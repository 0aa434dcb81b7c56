package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/zonal/format"
)

// Source is the backing mechanism a Store resolves object ids against.
// Resolve returns the raw attribute mapping for an id, or an error
// matching ErrNotExist when the source has no entry.
type Source interface {
	Resolve(id string) (map[string]any, error)
	List() ([]string, error)
}

// MemSource is an in-memory Source, used for fixtures and tests.
type MemSource map[string]map[string]any

// Resolve implements Source.
func (m MemSource) Resolve(id string) (map[string]any, error) {
	raw, ok := m[id]
	if !ok {
		return nil, ErrNotExist
	}
	return raw, nil
}

// List implements Source. Ids are returned sorted.
func (m MemSource) List() ([]string, error) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// sourceExtensions are the file extensions a DirSource considers, in
// lookup order.
var sourceExtensions = []string{".yaml", ".yml", ".json"}

// DirSource resolves object ids against a directory holding one document
// per object. An id O1 is looked up as O1.yaml, O1.yml, O1.json, then the
// same names lowercased.
type DirSource struct {
	dir string
}

// NewDirSource creates a directory-backed source. The directory must
// exist at construction time.
func NewDirSource(dir string) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("object directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("object directory: %s is not a directory", dir)
	}
	return &DirSource{dir: dir}, nil
}

// Resolve implements Source.
func (d *DirSource) Resolve(id string) (map[string]any, error) {
	if id == "" {
		return nil, ErrNotExist
	}

	for _, name := range []string{id, strings.ToLower(id)} {
		for _, ext := range sourceExtensions {
			path := filepath.Join(d.dir, name+ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("reading object file: %w", err)
			}

			var raw map[string]any
			if err := format.Unmarshal(data, format.Detect(path, data), &raw); err != nil {
				return nil, fmt.Errorf("object file %s: %w", path, err)
			}
			return raw, nil
		}
	}

	return nil, ErrNotExist
}

// List implements Source. Ids are the file stems of every recognized
// document in the directory, sorted.
func (d *DirSource) List() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		recognized := false
		for _, e := range sourceExtensions {
			if ext == e {
				recognized = true
				break
			}
		}
		if !recognized {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if !seen[stem] {
			seen[stem] = true
			ids = append(ids, stem)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
