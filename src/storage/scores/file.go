package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"blockblast/src/base"
)

const (
	appDir    = "blockblast"
	scoreFile = "scores.json"
)

// FileStore keeps every mode's list in a single JSON document keyed by mode name.
type FileStore struct {
	mu    sync.Mutex
	path  string
	limit int
}

// DefaultPath returns <user config dir>/blockblast/scores.json.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("scores: config dir: %w", err)
	}
	return filepath.Join(root, appDir, scoreFile), nil
}

func NewFileStore(path string, limit int) *FileStore {
	return &FileStore{path: path, limit: limit}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Append(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	key := r.Mode.String()
	doc[key] = insert(doc[key], r, f.limit)
	return f.save(doc)
}

func (f *FileStore) Top(ctx context.Context, mode base.GameMode, k int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	return head(doc[mode.String()], k), nil
}

func (f *FileStore) load() (map[string][]Record, error) {
	doc := make(map[string][]Record)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scores: read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scores: decode %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *FileStore) save(doc map[string][]Record) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("scores: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("scores: write: %w", err)
	}
	return os.Rename(tmp, f.path)
}
