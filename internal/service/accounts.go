package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Srengsophea/instantly-email-service/internal/auth"
	"github.com/Srengsophea/instantly-email-service/internal/models"
	"github.com/Srengsophea/instantly-email-service/internal/store"
)

// Accounts implements registration and credential management over the
// flat-file user store. Every mutation persists the whole store before
// returning success.
type Accounts struct {
	store *store.Store
	auth  *auth.Service
}

func NewAccounts(st *store.Store, au *auth.Service) *Accounts {
	return &Accounts{store: st, auth: au}
}

// Register creates a new user. The username must be unique across all
// users; the comparison is case-sensitive.
func (a *Accounts) Register(username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	var created models.User
	err := a.store.UpdateUsers(func(users map[string]models.User) error {
		for _, u := range users {
			if u.Username == username {
				return ErrDuplicateUsername
			}
		}
		hash, err := a.auth.HashPassword(password)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		created = models.User{
			ID:           uuid.New().String(),
			Username:     username,
			PasswordHash: hash,
			CreatedAt:    time.Now().Format(models.TimeLayout),
		}
		users[created.ID] = created
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	logrus.WithField("user_id", created.ID).Info("user registered")
	return created, nil
}

// Login scans for a user matching the username and password.
func (a *Accounts) Login(username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, ErrMissingFields
	}
	for _, u := range a.store.LoadUsers() {
		if u.Username == username && a.auth.CheckPassword(password, u.PasswordHash) == nil {
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// Get fetches a user by id.
func (a *Accounts) Get(userID string) (models.User, error) {
	u, ok := a.store.LoadUsers()[userID]
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ChangePassword replaces the stored hash after verifying the current
// password. On a wrong current password nothing is written.
func (a *Accounts) ChangePassword(userID, current, newPassword string) error {
	return a.store.UpdateUsers(func(users map[string]models.User) error {
		u, ok := users[userID]
		if !ok || a.auth.CheckPassword(current, u.PasswordHash) != nil {
			return ErrWrongPassword
		}
		hash, err := a.auth.HashPassword(newPassword)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		u.PasswordHash = hash
		users[userID] = u
		return nil
	})
}

// ChangeUsername renames the account. Identity is by id, so the session
// itself is untouched.
func (a *Accounts) ChangeUsername(userID, newUsername string) error {
	if newUsername == "" {
		return ErrUsernameRequired
	}
	return a.store.UpdateUsers(func(users map[string]models.User) error {
		for uid, u := range users {
			if u.Username == newUsername && uid != userID {
				return ErrDuplicateUsername
			}
		}
		u, ok := users[userID]
		if !ok {
			return ErrInvalidCredentials
		}
		u.Username = newUsername
		users[userID] = u
		return nil
	})
}
