package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Srengsophea/instantly-email-service/internal/models"
)

const (
	usersFile     = "users.json"
	mailboxesFile = "email_accounts.json"
)

// Store persists the two collections as whole JSON documents on disk.
// Every save rewrites the full file. The per-collection mutexes serialize
// read-modify-write cycles across concurrent requests; readers always see
// the file, not a cached copy.
type Store struct {
	dataDir string

	usersMu     sync.Mutex
	mailboxesMu sync.Mutex
}

// New creates a store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	return &Store{dataDir: dataDir}, nil
}

// LoadUsers returns the user collection keyed by id. A missing or
// unreadable file yields an empty map; the failure is logged, not surfaced.
func (s *Store) LoadUsers() map[string]models.User {
	users := map[string]models.User{}
	raw, err := os.ReadFile(s.path(usersFile))
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("read users store")
		}
		return users
	}
	if err := json.Unmarshal(raw, &users); err != nil {
		logrus.WithError(err).Warn("decode users store")
		return map[string]models.User{}
	}
	return users
}

// SaveUsers overwrites the user store wholesale.
func (s *Store) SaveUsers(users map[string]models.User) error {
	raw, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode users store")
	}
	if err := os.WriteFile(s.path(usersFile), raw, 0o644); err != nil {
		return errors.Wrap(err, "write users store")
	}
	return nil
}

// LoadMailboxes returns the mailbox sequence, empty on a missing or
// unreadable file.
func (s *Store) LoadMailboxes() []models.Mailbox {
	boxes := []models.Mailbox{}
	raw, err := os.ReadFile(s.path(mailboxesFile))
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("read mailboxes store")
		}
		return boxes
	}
	if err := json.Unmarshal(raw, &boxes); err != nil {
		logrus.WithError(err).Warn("decode mailboxes store")
		return []models.Mailbox{}
	}
	return boxes
}

// SaveMailboxes overwrites the mailbox store wholesale.
func (s *Store) SaveMailboxes(boxes []models.Mailbox) error {
	raw, err := json.MarshalIndent(boxes, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode mailboxes store")
	}
	if err := os.WriteFile(s.path(mailboxesFile), raw, 0o644); err != nil {
		return errors.Wrap(err, "write mailboxes store")
	}
	return nil
}

// UpdateUsers reloads the user collection, applies fn, and persists the
// result, all under the users lock. fn errors abort without writing.
func (s *Store) UpdateUsers(fn func(map[string]models.User) error) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users := s.LoadUsers()
	if err := fn(users); err != nil {
		return err
	}
	return s.SaveUsers(users)
}

// UpdateMailboxes mirrors UpdateUsers for the mailbox sequence. fn returns
// the slice to persist so deletions can reslice.
func (s *Store) UpdateMailboxes(fn func([]models.Mailbox) ([]models.Mailbox, error)) error {
	s.mailboxesMu.Lock()
	defer s.mailboxesMu.Unlock()

	boxes := s.LoadMailboxes()
	next, err := fn(boxes)
	if err != nil {
		return err
	}
	return s.SaveMailboxes(next)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name)
}
