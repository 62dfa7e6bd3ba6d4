// Package session keeps the CLI's tokens between invocations in a JSON file
// readable only by its owner.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/filex"
)

// Session is what a login leaves behind.
type Session struct {
	Name         string `json:"name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoggedIn reports whether the session carries an access token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.AccessToken != ""
}

// FileStore persists a Session at a fixed path.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load returns the stored session, or an empty one when no file exists.
func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	return &sess, nil
}

// Save writes sess atomically with owner-only permissions.
func (s *FileStore) Save(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := filex.WritePrivate(s.path, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored session. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
