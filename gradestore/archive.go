package gradestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

const archiveSuffix = ".xlsx.zst"

// ArchiveUpload stores a zstd-compressed copy of the raw uploaded roster
// next to the save file and returns the archive ID, so the grader can
// re-download the exact source file later. Best-effort: the session does
// not depend on the archive existing.
func (s *Store) ArchiveUpload(content []byte) (string, error) {
	id := uuid.New().String()

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	compressed := encoder.EncodeAll(content, make([]byte, 0, len(content)/2))
	encoder.Close()

	path := filepath.Join(s.dir, id+archiveSuffix)
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload archive: %w", err)
	}

	// only the latest upload matters; drop older archives
	s.pruneArchives(id)

	return id, nil
}

// ReadArchive decompresses a previously archived upload.
func (s *Store) ReadArchive(id string) ([]byte, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid archive id %q: %w", id, err)
	}

	compressed, err := os.ReadFile(filepath.Join(s.dir, parsed.String()+archiveSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload archive: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	content, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress upload archive: %w", err)
	}
	return content, nil
}

func (s *Store) pruneArchives(keepID string) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != ".zst" {
			continue
		}
		if name == keepID+archiveSuffix {
			continue
		}
		os.Remove(filepath.Join(s.dir, name))
	}
}
