package stations

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// SerializeIndex encodes an Index to bytes using gob encoding for disk-based
// caching, avoiding CSV re-parsing on startup.
func SerializeIndex(ix *Index) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ix); err != nil {
		return nil, fmt.Errorf("failed to encode station index: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeIndex decodes an Index previously produced by SerializeIndex.
func DeserializeIndex(data []byte) (*Index, error) {
	var ix Index
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&ix); err != nil {
		return nil, fmt.Errorf("failed to decode station index: %w", err)
	}
	return &ix, nil
}

// LoadIndexCached loads the station index, preferring a gob snapshot at
// cachePath when it is newer than both source files. A stale, missing or
// corrupt snapshot falls back to a fresh build; writing the snapshot back is
// best-effort.
func LoadIndexCached(stopsPath, complexesPath, cachePath string) (*Index, error) {
	if cachePath != "" && cacheFresh(cachePath, stopsPath, complexesPath) {
		if data, err := os.ReadFile(cachePath); err == nil {
			if ix, err := DeserializeIndex(data); err == nil {
				log.Printf("stations: loaded index snapshot from %s (%d stops)", cachePath, len(ix.StopToStation))
				return ix, nil
			}
			log.Printf("stations: snapshot %s is corrupt, rebuilding", cachePath)
		}
	}

	ix, err := LoadIndex(stopsPath, complexesPath)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		if data, err := SerializeIndex(ix); err == nil {
			if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err == nil {
				if err := os.WriteFile(cachePath, data, 0o644); err != nil {
					log.Printf("stations: failed to write snapshot %s: %v", cachePath, err)
				}
			}
		}
	}
	return ix, nil
}

func cacheFresh(cachePath string, sources ...string) bool {
	ci, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	for _, src := range sources {
		si, err := os.Stat(src)
		if err != nil || !ci.ModTime().After(si.ModTime()) {
			return false
		}
	}
	return true
}
