package sessions

import "time"

// Session carries the authenticated identity for one caller. It is created
// by the credential guard on a successful login and passed explicitly into
// every operation that needs the current account; nothing reads it from
// ambient state.
type Session struct {
	ID        string    `json:"id"`
	AccountID int       `json:"accountId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Active reports whether the session identifies an account and has not
// expired.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.AccountID > 0 && now.Before(s.ExpiresAt)
}
