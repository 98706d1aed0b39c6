package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srengsophea/instantly-email-service/internal/mailtm"
	"github.com/Srengsophea/instantly-email-service/internal/models"
	"github.com/Srengsophea/instantly-email-service/internal/store"
)

// fakeProvider stands in for the mail.tm API during service tests.
func fakeProvider(t *testing.T, handler http.HandlerFunc) *mailtm.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return mailtm.New(srv.URL)
}

func happyProvider(t *testing.T) *mailtm.Client {
	return fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/domains":
			w.Write([]byte(`{"hydra:member":[{"domain":"first.example"}]}`))
		case "/accounts":
			w.WriteHeader(http.StatusCreated)
		case "/token":
			w.Write([]byte(`{"token":"provider-token"}`))
		case "/messages":
			w.Write([]byte(`{"hydra:member":[{"id":"msg1","subject":"welcome"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newMailboxes(t *testing.T, client *mailtm.Client) *Mailboxes {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return NewMailboxes(st, client)
}

func TestGenerateAndList(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	box, err := m.Generate(context.Background(), "u1", "example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(box.Address, "@example.com"), "address %q", box.Address)
	assert.Equal(t, "u1", box.UserID)
	assert.Equal(t, "provider-token", box.Token)
	assert.Len(t, box.Username, 8)
	assert.Empty(t, box.Messages)

	listed := m.ListForUser("u1")
	require.Len(t, listed, 1)
	assert.Equal(t, box, listed[0])

	assert.Empty(t, m.ListForUser("somebody-else"))
}

func TestGenerateDefaultDomain(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	box, err := m.Generate(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "first.example", box.Domain)
}

func TestGenerateAccountCreationFails(t *testing.T) {
	m := newMailboxes(t, fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	_, err := m.Generate(context.Background(), "u1", "example.com")
	require.Error(t, err)
	assert.Equal(t, "failed to create email account", err.Error())

	// nothing persisted
	assert.Empty(t, m.ListForUser("u1"))
}

func TestGenerateTokenFails(t *testing.T) {
	m := newMailboxes(t, fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/accounts" {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := m.Generate(context.Background(), "u1", "example.com")
	require.Error(t, err)
	assert.Equal(t, "failed to get authentication token", err.Error())
	assert.Empty(t, m.ListForUser("u1"))
}

func TestListNewestFirst(t *testing.T) {
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	m := NewMailboxes(st, happyProvider(t))

	require.NoError(t, st.SaveMailboxes([]models.Mailbox{
		{ID: "older", UserID: "u1", CreatedAt: "2024-01-01 10:00:00", Messages: []models.Message{}},
		{ID: "newer", UserID: "u1", CreatedAt: "2024-01-02 10:00:00", Messages: []models.Message{}},
	}))

	listed := m.ListForUser("u1")
	require.Len(t, listed, 2)
	assert.Equal(t, "newer", listed[0].ID)
	assert.Equal(t, "older", listed[1].ID)
}

func TestDelete(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	box, err := m.Generate(context.Background(), "u1", "example.com")
	require.NoError(t, err)

	require.NoError(t, m.Delete(box.ID, "u1"))
	assert.Empty(t, m.ListForUser("u1"))
}

func TestDeleteNotOwner(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	box, err := m.Generate(context.Background(), "u1", "example.com")
	require.NoError(t, err)

	err = m.Delete(box.ID, "attacker")
	assert.ErrorIs(t, err, ErrNotFound)

	// the mailbox is still present
	assert.Len(t, m.ListForUser("u1"), 1)
}

func TestDeleteUnknownID(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	err := m.Delete("no-such-id", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchInbox(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	box, err := m.Generate(context.Background(), "u1", "example.com")
	require.NoError(t, err)

	msgs, err := m.FetchInbox(context.Background(), box.ID, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "welcome", msgs[0].Subject)
}

func TestFetchInboxNotOwner(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	box, err := m.Generate(context.Background(), "u1", "example.com")
	require.NoError(t, err)

	_, err = m.FetchInbox(context.Background(), box.ID, "attacker")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchInboxUnknownID(t *testing.T) {
	m := newMailboxes(t, happyProvider(t))

	_, err := m.FetchInbox(context.Background(), "no-such-id", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchInboxProviderDown(t *testing.T) {
	calls := 0
	m := newMailboxes(t, fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts":
			w.WriteHeader(http.StatusCreated)
		case "/token":
			w.Write([]byte(`{"token":"provider-token"}`))
		case "/messages":
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))

	box, err := m.Generate(context.Background(), "u1", "example.com")
	require.NoError(t, err)

	_, err = m.FetchInbox(context.Background(), box.ID, "u1")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, 1, calls, "no retry on provider failure")
}
