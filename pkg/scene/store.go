package scene

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/observability"
)

// Store persists scene specs by name.
type Store interface {
	// Get returns the named spec, or a SCENE_NOT_FOUND error.
	Get(ctx context.Context, name string) (*Spec, error)

	// Put validates and stores spec under spec.Name, replacing any previous
	// version.
	Put(ctx context.Context, spec *Spec) error

	// List returns the stored names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the named spec and reports whether it existed.
	Delete(ctx context.Context, name string) (bool, error)

	Close() error
}

// FileStore keeps one file per scene in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	format  Format
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-based scene store writing files in format.
// If baseDir is empty, defaults to ~/.config/spatialnav/scenes/
func NewFileStore(baseDir string, format Format) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "spatialnav", "scenes")
	}
	if format == "" {
		format = FormatTOML
	}
	if !slices.Contains(Formats, format) {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scene format: %q", format)
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create scene dir")
	}
	return &FileStore{baseDir: baseDir, format: format}, nil
}

func (s *FileStore) scenePath(name string) string {
	return filepath.Join(s.baseDir, name+"."+string(s.format))
}

func (s *FileStore) Get(ctx context.Context, name string) (spec *Spec, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if spec != nil {
			n = len(spec.Elements)
		}
		observability.Scene().OnSceneLoad(ctx, "file", name, n, time.Since(start), err)
	}()

	if err := errors.ValidateSceneName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.scenePath(name))
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read scene file")
	}

	spec, err = Decode(bytes.NewReader(data), s.format)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}

func (s *FileStore) Put(ctx context.Context, spec *Spec) (err error) {
	start := time.Now()
	defer func() {
		observability.Scene().OnSceneSave(ctx, "file", spec.Name, time.Since(start), err)
	}()

	if err := errors.ValidateSceneName(spec.Name); err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, spec, s.format); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "encode scene")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.scenePath(spec.Name), buf.Bytes(), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write scene file")
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read scene dir")
	}

	ext := "." + string(s.format)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	slices.Sort(names)
	return names, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) (bool, error) {
	if err := errors.ValidateSceneName(name); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.scenePath(name)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(errors.ErrCodeStorage, err, "remove scene file")
	}
	return true, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for scene files.
func (s *FileStore) Path() string { return s.baseDir }
