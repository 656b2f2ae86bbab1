package account

import (
	"strconv"
	"strings"
	"time"

	"github.com/notatez/notatez/internal/xmldoc"
)

// On-disk schema: an Accounts root holding one Account element per record,
// fields in the fixed order below.
const (
	RootName = "Accounts"
	itemName = "Account"
)

func decode(el *xmldoc.Element) (Account, error) {
	id, err := el.Int("AccountId")
	if err != nil {
		return Account{}, err
	}
	created, err := el.Time("DateCreated")
	if err != nil {
		return Account{}, err
	}
	modified, err := el.Time("DateModified")
	if err != nil {
		return Account{}, err
	}
	return Account{
		AccountID:    id,
		Name:         el.Text("Name"),
		Email:        el.Text("Email"),
		Password:     el.Text("Password"),
		DateCreated:  created,
		DateModified: modified,
	}, nil
}

func encode(a Account) *xmldoc.Element {
	return xmldoc.NewElement(itemName, "").Append(
		xmldoc.NewElement("AccountId", strconv.Itoa(a.AccountID)),
		xmldoc.NewElement("Name", strings.TrimSpace(a.Name)),
		xmldoc.NewElement("Email", strings.TrimSpace(a.Email)),
		xmldoc.NewElement("Password", strings.TrimSpace(a.Password)),
		xmldoc.NewElement("DateCreated", formatTime(a.DateCreated)),
		xmldoc.NewElement("DateModified", formatTime(a.DateModified)),
	)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(xmldoc.TimeFormat)
}

// NameFromEmail returns the local-part of an email address, or the whole
// string when it contains no @.
func NameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
