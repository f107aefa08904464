// Package gradestore persists grading progress to a single JSON file on
// local disk. One record exists per store; every save replaces the
// previous one. Writes go through a temp file and rename so that a
// process killed mid-write never leaves a truncated record behind.
package gradestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const saveFileName = "auto_save.json"

// ParseError marks a stored record that exists but cannot be decoded.
// Callers treat it as "no record", surfacing a warning to the grader
// instead of failing the session.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse saved record %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Path returns the location of the durable record file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, saveFileName)
}

// Persist replaces the stored record with the given one. The record is
// first written to a temp file in the same directory and then renamed
// over the destination, so a crash mid-write leaves either the old record
// or the new one, never a partial file.
func (s *Store) Persist(record *SessionRecord) error {
	content, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, saveFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(content)
	if writeErr == nil {
		writeErr = tmp.Sync()
	}
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp save file: %w", writeErr)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}

// Load reads the stored record. It returns (nil, nil) when no record has
// ever been persisted, and (nil, *ParseError) when the file exists but is
// unreadable or corrupt.
func (s *Store) Load() (*SessionRecord, error) {
	content, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &ParseError{Path: s.Path(), Err: err}
	}

	record := &SessionRecord{}
	if err := json.Unmarshal(content, record); err != nil {
		return nil, &ParseError{Path: s.Path(), Err: err}
	}
	return record, nil
}
