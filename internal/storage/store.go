package storage

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrRejected means the filename carried no usable extension or one
	// outside the allow-list. Nothing was written.
	ErrRejected = errors.New("attachment rejected")
	// ErrWriteFailed means the blob could not be written to disk.
	ErrWriteFailed = errors.New("attachment write failed")
)

// allowedExtensions gates what may enter the store. Matching is
// case-insensitive; keys are the canonical lower-case forms.
var allowedExtensions = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webm": true,
}

// Store is a content-addressed blob store on the local filesystem.
// Blobs are keyed by md5(content) + "." + extension, so identical
// attachments from different uploads share a single file. Blobs are
// write-once and never deleted.
type Store struct {
	root string
}

// New ensures the storage root exists and returns a store rooted there.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Key returns the store key the given content and filename would map to,
// or ErrRejected if the extension is not allowed. No I/O is performed.
func (s *Store) Key(content []byte, filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if len(ext) < 2 || !allowedExtensions[ext] {
		return "", ErrRejected
	}

	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:]) + "." + ext, nil
}

// Save writes content under its content-addressed key and returns the key.
// Saving the same content twice is a no-op for the second call: the blob
// already on disk is left untouched and no error is returned.
func (s *Store) Save(content []byte, filename string) (string, error) {
	key, err := s.Key(content, filename)
	if err != nil {
		slog.Debug("discarding attachment", "filename", filename)
		return "", err
	}

	path := filepath.Join(s.root, key)
	if _, err := os.Lstat(path); err == nil {
		slog.Debug("blob already stored", "key", key)
		return key, nil
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		slog.Error("writing attachment blob", "key", key, "err", err)
		return "", fmt.Errorf("%w: %s", ErrWriteFailed, key)
	}

	slog.Info("attachment stored", "key", key, "bytes", len(content))
	return key, nil
}

// Open returns the blob for a key, for serving or verification.
func (s *Store) Open(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.Base(key)))
}
