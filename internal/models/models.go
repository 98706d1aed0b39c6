package models

// TimeLayout is the fixed format for created_at fields. Lexicographic
// order on this layout matches chronological order, which the mailbox
// listing relies on.
const TimeLayout = "2006-01-02 15:04:05"

// User represents a registered account holder
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

// Mailbox represents a provider-issued disposable address owned by one user.
// Messages stays empty in storage; the authoritative message list lives in
// the provider and is fetched on demand.
type Mailbox struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Address   string    `json:"address"`
	Username  string    `json:"username"`
	Domain    string    `json:"domain"`
	Password  string    `json:"password"`
	Token     string    `json:"token"`
	CreatedAt string    `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// Message is the subset of a provider message shown in the inbox view
type Message struct {
	ID             string    `json:"id"`
	From           Address   `json:"from"`
	To             []Address `json:"to"`
	Subject        string    `json:"subject"`
	Intro          string    `json:"intro"`
	Seen           bool      `json:"seen"`
	HasAttachments bool      `json:"hasAttachments"`
	Size           int64     `json:"size"`
	CreatedAt      string    `json:"createdAt"`
}

// Address is a sender or recipient as reported by the provider
type Address struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}
