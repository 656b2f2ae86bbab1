package xmldoc

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the on-disk representation of timestamps. Nanosecond
// precision keeps DateModified strictly increasing across updates that land
// within the same second.
const TimeFormat = time.RFC3339Nano

// Element is one ordered node of a document tree. A node carries either a
// text value or child elements, never both.
type Element struct {
	Name     string
	Value    string
	Children []*Element
}

// NewElement returns a leaf element holding the given text value.
func NewElement(name, value string) *Element {
	return &Element{Name: name, Value: value}
}

// Append adds children to the element, preserving order.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Child returns the first child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Text returns the text value of the named child, or "" when absent.
func (e *Element) Text(name string) string {
	if c := e.Child(name); c != nil {
		return c.Value
	}
	return ""
}

// SetText replaces the value of the named child, appending the child first
// when it does not exist yet.
func (e *Element) SetText(name, value string) {
	if c := e.Child(name); c != nil {
		c.Value = value
		c.Children = nil
		return
	}
	e.Append(NewElement(name, value))
}

// Replace swaps the first child with the given name for the supplied element.
// When no child matches, the element is appended.
func (e *Element) Replace(el *Element) {
	for i, c := range e.Children {
		if c.Name == el.Name {
			e.Children[i] = el
			return
		}
	}
	e.Append(el)
}

// Int parses the named child as an integer. A missing or empty child yields
// 0; malformed text yields ErrCodec.
func (e *Element) Int(name string) (int, error) {
	s := strings.TrimSpace(e.Text(name))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: field %s: %q", ErrCodec, name, s)
	}
	return n, nil
}

// Time parses the named child as a timestamp. A missing or empty child
// yields the zero time; malformed text yields ErrCodec.
func (e *Element) Time(name string) (time.Time, error) {
	s := strings.TrimSpace(e.Text(name))
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: field %s: %q", ErrCodec, name, s)
	}
	return t, nil
}

// MarshalXML writes the element and its subtree.
func (e *Element) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: e.Name}
	start.Attr = nil
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if len(e.Children) > 0 {
		for _, c := range e.Children {
			if err := c.MarshalXML(enc, xml.StartElement{}); err != nil {
				return err
			}
		}
	} else if e.Value != "" {
		if err := enc.EncodeToken(xml.CharData(e.Value)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// UnmarshalXML reads the element and its subtree. Whitespace-only text
// around child elements is dropped.
func (e *Element) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	e.Name = start.Name.Local
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Element{}
			if err := child.UnmarshalXML(dec, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(e.Children) == 0 {
				e.Value = strings.TrimSpace(text.String())
			}
			return nil
		}
	}
}
