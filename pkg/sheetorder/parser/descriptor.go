// Package parser reads the files the sheet ordering run consumes: build
// descriptors and spreadsheet workbooks.
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// Attribute names used by build descriptors.
const (
	AttrPath      = "path"
	AttrIncluding = "including"
)

// Entry is one element of a build descriptor that carries a path attribute,
// e.g. <classpathentry kind="src" path="src/test/java" including="a/|b/"/>.
type Entry struct {
	// Name is the element's local name.
	Name  string
	attrs map[string]string
}

// Attribute returns the value of the named attribute and whether it is present.
func (e *Entry) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Path returns the entry's path attribute.
func (e *Entry) Path() string {
	return e.attrs[AttrPath]
}

// Descriptor is a parsed build descriptor: every path-bearing element in document order.
type Descriptor struct {
	// Source is the file the descriptor was read from.
	Source  string
	entries []*Entry
}

// Entries returns the descriptor entries in document order.
func (d *Descriptor) Entries() []*Entry {
	return d.entries
}

// FindEntry returns the first entry, in document order, whose path attribute equals path.
func (d *Descriptor) FindEntry(path string) (*Entry, bool) {
	for _, e := range d.entries {
		if e.Path() == path {
			return e, true
		}
	}
	return nil, false
}

// ReadDescriptor parses the build descriptor at path.
func ReadDescriptor(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ParseDescriptor(f)
	if err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", path, err)
	}
	d.Source = path
	return d, nil
}

// ParseDescriptor parses a build descriptor document from r.
func ParseDescriptor(r io.Reader) (*Descriptor, error) {
	decoder := xml.NewDecoder(r)
	d := &Descriptor{}
	sawRoot := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		attrs := make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			attrs[a.Name.Local] = a.Value
		}
		if _, ok := attrs[AttrPath]; !ok {
			continue
		}
		d.entries = append(d.entries, &Entry{Name: start.Name.Local, attrs: attrs})
	}

	if !sawRoot {
		return nil, errors.New("descriptor has no root element")
	}
	return d, nil
}
