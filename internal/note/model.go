package note

import "time"

// Author is the denormalized snapshot of the owning account embedded in
// every note. It is a cached projection, refreshed only when the note is
// written; it goes stale if the account's name changes afterwards.
type Author struct {
	AccountID int
	Name      string
}

// Note is one user-authored record. Content holds the working (decoded)
// text; the repository entity-encodes it at rest. Slug is derived from
// Title on every write and is lossy: collisions are possible and stay
// unresolved.
type Note struct {
	ID           int
	Title        string
	Slug         string
	Content      string
	DateCreated  time.Time
	DateModified time.Time
	AccountID    int
	Author       Author
}
