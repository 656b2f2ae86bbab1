package xmldoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func item(id string) *Element {
	return NewElement("Note", "").Append(NewElement("Id", id))
}

func TestNextID(t *testing.T) {
	doc := NewDocument("Notes")

	next, err := doc.NextID("Id")
	require.NoError(t, err)
	require.Equal(t, 1, next)

	doc.Items = append(doc.Items, item("1"), item("5"), item("3"))
	next, err = doc.NextID("Id")
	require.NoError(t, err)
	require.Equal(t, 6, next)
}

func TestNextIDNeverReusesAfterDelete(t *testing.T) {
	doc := NewDocument("Notes")
	doc.Items = append(doc.Items, item("1"))

	next, err := doc.NextID("Id")
	require.NoError(t, err)
	require.Equal(t, 2, next)
	doc.Items = append(doc.Items, item("2"))

	// removing the maximum must not free its number
	doc.Items = doc.Items[:1]
	next, err = doc.NextID("Id")
	require.NoError(t, err)
	require.Equal(t, 3, next)
	require.Equal(t, 3, doc.LastID)
}

func TestNextIDCorruptIdentifier(t *testing.T) {
	doc := NewDocument("Notes")
	doc.Items = append(doc.Items, item("1"), item("oops"))

	_, err := doc.NextID("Id")
	require.ErrorIs(t, err, ErrCodec)
}

func TestFindByIDAndRemove(t *testing.T) {
	doc := NewDocument("Notes")
	doc.Items = append(doc.Items, item("1"), item("2"), item("3"))

	el, err := doc.FindByID("Id", 2)
	require.NoError(t, err)
	require.NotNil(t, el)

	require.True(t, doc.Remove(el))
	require.Len(t, doc.Items, 2)
	require.Equal(t, "1", doc.Items[0].Text("Id"))
	require.Equal(t, "3", doc.Items[1].Text("Id"))

	el, err = doc.FindByID("Id", 2)
	require.NoError(t, err)
	require.Nil(t, el)

	require.False(t, doc.Remove(item("9")))
}
