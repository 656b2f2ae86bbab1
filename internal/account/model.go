package account

import "time"

// Account is a registered user record.
//
// Email is kept in its entity-encoded at-rest form; Password holds the
// one-way protected hash and never the plaintext. Name is derived from the
// email local-part at registration and is not user-supplied.
type Account struct {
	AccountID    int
	Name         string
	Email        string
	Password     string
	DateCreated  time.Time
	DateModified time.Time
}
