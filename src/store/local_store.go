package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps one <prefix><id>.json file per record inside a directory.
// It backs local development and the dev fallback of HybridStore.
type LocalStore[T Entity] struct {
	dir    string
	prefix string
}

func NewLocalStore[T Entity](dir, prefix string) *LocalStore[T] {
	return &LocalStore[T]{dir: dir, prefix: prefix}
}

func (s *LocalStore[T]) fullPath(id string) string {
	return filepath.Join(s.dir, s.prefix+id+".json")
}

func (s *LocalStore[T]) ensureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s *LocalStore[T]) List(ctx context.Context) ([]T, error) {
	if err := s.ensureDir(); err != nil {
		return nil, fmt.Errorf("failed to create local data dir: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read local data dir: %w", err)
	}

	items := make([]T, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if s.prefix != "" && !strings.HasPrefix(entry.Name(), s.prefix) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("ERROR: Skipping malformed local record %s: %v", entry.Name(), err)
			continue
		}
		if err := item.Validate(); err != nil {
			log.Printf("ERROR: Skipping invalid local record %s: %v", entry.Name(), err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *LocalStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	raw, err := os.ReadFile(s.fullPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to read local record %s: %w", id, err)
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return zero, false, fmt.Errorf("malformed local record %s: %w", id, err)
	}
	if err := item.Validate(); err != nil {
		return zero, false, fmt.Errorf("invalid local record %s: %w", id, err)
	}
	return item, true, nil
}

func (s *LocalStore[T]) Put(ctx context.Context, item T) (T, error) {
	var zero T
	if err := item.Validate(); err != nil {
		return zero, err
	}
	if err := s.ensureDir(); err != nil {
		return zero, fmt.Errorf("failed to create local data dir: %w", err)
	}

	body, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return zero, fmt.Errorf("failed to encode record %s: %w", item.GetID(), err)
	}
	if err := os.WriteFile(s.fullPath(item.GetID()), body, 0o644); err != nil {
		return zero, fmt.Errorf("failed to write local record %s: %w", item.GetID(), err)
	}
	return item, nil
}

func (s *LocalStore[T]) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.fullPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete local record %s: %w", id, err)
	}
	return nil
}
