// Package idstore persists the object ids one workflow hands to the next as
// small text files in a state directory.
package idstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Scratch file names.
const (
	ProfileFile      = "profile.txt"
	BuyerProfileFile = "buyer-profile.txt"
	MasterFile       = "master.txt"
	MetadataFile     = "metadata.txt"
)

// ErrNotFound is returned when a scratch file is absent or empty.
var ErrNotFound = errors.New("no stored id")

// Store reads and writes scratch files below one directory.
type Store struct {
	fs  afero.Fs
	dir string
}

func New(fs afero.Fs, dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{fs: fs, dir: dir}
}

// NewOS stores files on the local disk.
func NewOS(dir string) *Store {
	return New(afero.NewOsFs(), dir)
}

func (s *Store) Dir() string {
	return s.dir
}

// FS is the filesystem the store writes to.
func (s *Store) FS() afero.Fs {
	return s.fs
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save replaces the file content with id.
func (s *Store) Save(name, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("refusing to store an empty id in %s", name)
	}
	return s.write(name, id)
}

// SaveList stores ids one per line.
func (s *Store) SaveList(name string, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("refusing to store an empty id list in %s", name)
	}
	return s.write(name, strings.Join(ids, "\n"))
}

func (s *Store) write(name, content string) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir %s: %w", s.dir, err)
	}
	if err := afero.WriteFile(s.fs, s.path(name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path(name), err)
	}
	return nil
}

// Load returns the first stored id.
func (s *Store) Load(name string) (string, error) {
	ids, err := s.LoadList(name)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// LoadList returns every non-blank line of the file.
func (s *Store) LoadList(name string) ([]string, error) {
	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.path(name), ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", s.path(name), err)
	}

	ids := make([]string, 0)
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: %w", s.path(name), ErrNotFound)
	}
	return ids, nil
}
