package note

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/notatez/notatez/internal/xmldoc"
)

// On-disk schema: a Notes root holding one Note element per record, fields
// in the fixed order below. The nested Account element is the author
// snapshot.
const (
	RootName = "Notes"
	itemName = "Note"
)

func decode(el *xmldoc.Element) (Note, error) {
	id, err := el.Int("Id")
	if err != nil {
		return Note{}, err
	}
	accountID, err := el.Int("AccountId")
	if err != nil {
		return Note{}, err
	}
	created, err := el.Time("DateCreated")
	if err != nil {
		return Note{}, err
	}
	modified, err := el.Time("DateModified")
	if err != nil {
		return Note{}, err
	}

	author := Author{AccountID: accountID}
	if snap := el.Child("Account"); snap != nil {
		author.Name = snap.Text("Name")
	}

	return Note{
		ID:           id,
		Title:        el.Text("Title"),
		Slug:         el.Text("Slug"),
		Content:      html.UnescapeString(el.Text("Content")),
		DateCreated:  created,
		DateModified: modified,
		AccountID:    accountID,
		Author:       author,
	}, nil
}

func encode(n Note) *xmldoc.Element {
	return xmldoc.NewElement(itemName, "").Append(
		xmldoc.NewElement("Id", strconv.Itoa(n.ID)),
		xmldoc.NewElement("Title", strings.TrimSpace(n.Title)),
		xmldoc.NewElement("Slug", strings.TrimSpace(n.Slug)),
		xmldoc.NewElement("Content", html.EscapeString(strings.TrimSpace(n.Content))),
		xmldoc.NewElement("DateCreated", formatTime(n.DateCreated)),
		xmldoc.NewElement("DateModified", formatTime(n.DateModified)),
		xmldoc.NewElement("AccountId", strconv.Itoa(n.AccountID)),
		snapshotElement(n.Author),
	)
}

func snapshotElement(a Author) *xmldoc.Element {
	return xmldoc.NewElement("Account", "").Append(
		xmldoc.NewElement("AccountId", strconv.Itoa(a.AccountID)),
		xmldoc.NewElement("Name", strings.TrimSpace(a.Name)),
	)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(xmldoc.TimeFormat)
}
