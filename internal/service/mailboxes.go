package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Srengsophea/instantly-email-service/internal/mailtm"
	"github.com/Srengsophea/instantly-email-service/internal/models"
	"github.com/Srengsophea/instantly-email-service/internal/store"
)

// Mailboxes provisions disposable addresses through the provider and
// tracks ownership in the flat-file mailbox store.
type Mailboxes struct {
	store  *store.Store
	client *mailtm.Client
}

func NewMailboxes(st *store.Store, client *mailtm.Client) *Mailboxes {
	return &Mailboxes{store: st, client: client}
}

// Generate provisions a new mailbox for the user. With no domain given it
// takes the first available one. The provider account and token calls run
// in sequence; if either fails nothing is persisted.
func (m *Mailboxes) Generate(ctx context.Context, userID, domain string) (models.Mailbox, error) {
	if domain == "" {
		domains := m.client.Domains(ctx)
		if len(domains) > 0 {
			domain = domains[0]
		} else {
			domain = "mail.tm"
		}
	}

	local := uuid.New().String()[:8]
	password := uuid.New().String()
	address := local + "@" + domain

	if err := m.client.CreateAccount(ctx, address, password); err != nil {
		logrus.WithError(err).WithField("address", address).Warn("provider account creation failed")
		return models.Mailbox{}, errors.New("failed to create email account")
	}
	token, err := m.client.Token(ctx, address, password)
	if err != nil {
		logrus.WithError(err).WithField("address", address).Warn("provider token request failed")
		return models.Mailbox{}, errors.New("failed to get authentication token")
	}

	box := models.Mailbox{
		ID:        uuid.New().String(),
		UserID:    userID,
		Address:   address,
		Username:  local,
		Domain:    domain,
		Password:  password,
		Token:     token,
		CreatedAt: time.Now().Format(models.TimeLayout),
		Messages:  []models.Message{},
	}
	err = m.store.UpdateMailboxes(func(boxes []models.Mailbox) ([]models.Mailbox, error) {
		return append(boxes, box), nil
	})
	if err != nil {
		return models.Mailbox{}, err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "mailbox_id": box.ID}).Info("mailbox generated")
	return box, nil
}

// ListForUser reloads the store and returns the user's mailboxes, newest
// first. CreatedAt uses a fixed layout, so string order is time order.
func (m *Mailboxes) ListForUser(userID string) []models.Mailbox {
	out := []models.Mailbox{}
	for _, b := range m.store.LoadMailboxes() {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// Delete removes a mailbox after an ownership check. A mailbox owned by
// somebody else reports the same error as a missing one.
func (m *Mailboxes) Delete(mailboxID, userID string) error {
	return m.store.UpdateMailboxes(func(boxes []models.Mailbox) ([]models.Mailbox, error) {
		for i, b := range boxes {
			if b.ID == mailboxID && b.UserID == userID {
				return append(boxes[:i], boxes[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// FetchInbox pulls the current message list from the provider for an
// owned mailbox. Messages are never persisted locally.
func (m *Mailboxes) FetchInbox(ctx context.Context, mailboxID, userID string) ([]models.Message, error) {
	var token string
	found := false
	for _, b := range m.store.LoadMailboxes() {
		if b.ID == mailboxID && b.UserID == userID {
			token, found = b.Token, true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	msgs, err := m.client.Messages(ctx, token)
	if err != nil {
		logrus.WithError(err).WithField("mailbox_id", mailboxID).Warn("provider inbox fetch failed")
		return nil, ErrProviderUnavailable
	}
	return msgs, nil
}
