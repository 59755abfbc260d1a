package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Artifact file extensions used by FSStore.
const (
	jsonExt  = ".json"
	imageExt = ".png"
)

// FSStoreConfig configures a filesystem store.
type FSStoreConfig struct {
	// Dir is the directory artifact pairs live in. Created if missing.
	Dir string
}

// FSStore keeps each pair as two sibling files, <key>.json and <key>.png.
//
// Writes go to temp files in the same directory and are committed by rename,
// image first, JSON last. The JSON file therefore acts as the commit marker:
// if it exists, the whole pair is readable. Lookup treats a lone image as a
// miss and Sweep garbage-collects it.
type FSStore struct {
	dir string
}

var _ Store = (*FSStore)(nil)

// NewFSStore creates the directory if needed and returns a store over it.
func NewFSStore(cfg FSStoreConfig) (*FSStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrStoreFailed)
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	return &FSStore{dir: cfg.Dir}, nil
}

// Dir returns the directory the store writes into.
func (s *FSStore) Dir() string { return s.dir }

// Lookup reads the pair for key. A hit requires both files.
func (s *FSStore) Lookup(ctx context.Context, key string) (*Entry, bool) {
	if ValidateKey(key) != nil {
		return nil, false
	}
	jsonPath := filepath.Join(s.dir, key+jsonExt)
	info, err := os.Stat(jsonPath)
	if err != nil {
		return nil, false
	}
	jsonBytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, false
	}
	imageBytes, err := os.ReadFile(filepath.Join(s.dir, key+imageExt))
	if err != nil {
		return nil, false
	}
	return &Entry{
		Key:       key,
		JSON:      jsonBytes,
		Image:     imageBytes,
		CreatedAt: info.ModTime(),
	}, true
}

// Put commits both artifacts. The JSON rename is last, so a crash mid-write
// leaves at most an orphan image, never a visible half pair.
func (s *FSStore) Put(ctx context.Context, key string, jsonBytes, imageBytes []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	imagePath := filepath.Join(s.dir, key+imageExt)
	if err := s.writeAtomic(imagePath, imageBytes); err != nil {
		return err
	}
	jsonPath := filepath.Join(s.dir, key+jsonExt)
	if err := s.writeAtomic(jsonPath, jsonBytes); err != nil {
		// Roll back the image so the next Lookup is a clean miss.
		os.Remove(imagePath)
		return err
	}
	return nil
}

func (s *FSStore) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	return nil
}

// Delete removes both artifacts, JSON first so the pair disappears at once.
func (s *FSStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, key+jsonExt)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	if err := os.Remove(filepath.Join(s.dir, key+imageExt)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	return nil
}

// Sweep deletes pairs whose JSON artifact is older than ttl, plus any orphan
// images left by interrupted writes. It returns the number of pairs removed.
func (s *FSStore) Sweep(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	cutoff := time.Now().Add(-ttl)
	removed := 0
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		name := de.Name()
		switch {
		case strings.HasSuffix(name, jsonExt):
			key := strings.TrimSuffix(name, jsonExt)
			if ValidateKey(key) != nil {
				continue
			}
			info, err := de.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}
			if err := s.Delete(ctx, key); err != nil {
				continue
			}
			removed++
		case strings.HasSuffix(name, imageExt):
			key := strings.TrimSuffix(name, imageExt)
			if ValidateKey(key) != nil {
				continue
			}
			// Orphan image with no JSON sibling: write that never committed.
			if _, err := os.Stat(filepath.Join(s.dir, key+jsonExt)); os.IsNotExist(err) {
				info, ierr := de.Info()
				if ierr == nil && info.ModTime().Before(cutoff) {
					os.Remove(filepath.Join(s.dir, name))
				}
			}
		}
	}
	return removed, nil
}
