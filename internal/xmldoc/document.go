package xmldoc

import "fmt"

// lastIDName is the root child holding the identifier high-water mark.
const lastIDName = "LastId"

// Document is the full persisted tree for one entity collection: a root
// element holding one child element per record, in document order. LastID is
// the highest identifier ever assigned, persisted alongside the records so
// identifiers survive deletion of the maximum record.
type Document struct {
	Root   string
	Items  []*Element
	LastID int
}

// NewDocument returns an empty document with just the root element.
func NewDocument(root string) *Document {
	return &Document{Root: root}
}

// Find returns the first item matching the predicate, or nil.
func (d *Document) Find(match func(*Element) bool) *Element {
	for _, el := range d.Items {
		if match(el) {
			return el
		}
	}
	return nil
}

// FindByID returns the first item whose named field parses to id, or nil.
// Malformed identifier text yields ErrCodec.
func (d *Document) FindByID(field string, id int) (*Element, error) {
	for _, el := range d.Items {
		n, err := el.Int(field)
		if err != nil {
			return nil, err
		}
		if n == id {
			return el, nil
		}
	}
	return nil, nil
}

// Remove deletes the given item from the document, preserving the order of
// the remaining items. Returns false when the item is not present.
func (d *Document) Remove(el *Element) bool {
	for i, it := range d.Items {
		if it == el {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

// NextID returns one past the highest identifier ever assigned and advances
// the high-water mark. The maximum is taken over the live items and LastID
// together, so deleting the record with the largest identifier does not free
// its number for reuse.
func (d *Document) NextID(field string) (int, error) {
	max := d.LastID
	for _, el := range d.Items {
		n, err := el.Int(field)
		if err != nil {
			return 0, fmt.Errorf("next id: %w", err)
		}
		if n > max {
			max = n
		}
	}
	d.LastID = max + 1
	return d.LastID, nil
}
