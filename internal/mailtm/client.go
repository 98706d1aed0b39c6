package mailtm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Srengsophea/instantly-email-service/internal/models"
)

// FallbackDomains is served when the provider cannot list domains.
var FallbackDomains = []string{"mail.tm", "tmpmail.org", "emailtemporal.net", "tempmail.demo"}

// Client talks to a mail.tm-compatible temporary-mail API. Every method
// issues a single blocking request; there is no retry.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type credentials struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Domains lists the domains mailboxes can be generated under. Any
// provider failure falls back to a fixed list instead of propagating.
func (c *Client) Domains(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/domains?page=1", nil)
	if err != nil {
		return FallbackDomains
	}
	resp, err := c.http.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("provider domains unreachable, using fallback list")
		return FallbackDomains
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("provider domains request failed, using fallback list")
		return FallbackDomains
	}

	var out struct {
		Member []struct {
			Domain string `json:"domain"`
		} `json:"hydra:member"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Member) == 0 {
		return FallbackDomains
	}

	domains := make([]string, 0, len(out.Member))
	for _, m := range out.Member {
		domains = append(domains, m.Domain)
	}
	return domains
}

// CreateAccount registers the address with the provider.
func (c *Client) CreateAccount(ctx context.Context, address, password string) error {
	resp, err := c.postJSON(ctx, "/accounts", credentials{Address: address, Password: password})
	if err != nil {
		return errors.Wrap(err, "create account")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.Errorf("create account: provider returned %d", resp.StatusCode)
	}
	return nil
}

// Token exchanges mailbox credentials for a bearer token.
func (c *Client) Token(ctx context.Context, address, password string) (string, error) {
	resp, err := c.postJSON(ctx, "/token", credentials{Address: address, Password: password})
	if err != nil {
		return "", errors.Wrap(err, "obtain token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", errors.Errorf("obtain token: provider returned %d", resp.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "decode token response")
	}
	if out.Token == "" {
		return "", errors.New("obtain token: empty token in provider response")
	}
	return out.Token, nil
}

// Messages fetches the inbox for a mailbox token. Unlike Domains, failures
// are returned so callers can report the provider as unavailable.
func (c *Client) Messages(ctx context.Context, token string) ([]models.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/messages", nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetch messages")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch messages")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch messages: provider returned %d", resp.StatusCode)
	}

	var out struct {
		Member []models.Message `json:"hydra:member"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode messages response")
	}
	if out.Member == nil {
		return []models.Message{}, nil
	}
	return out.Member, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}
