package record

import (
	"github.com/ayoisaiah/hypnos/internal/apperr"
)

// lengthPrefixSize is the width of the length byte written before every
// variable field.
const lengthPrefixSize = 1

var (
	ErrBufferTooSmall = &apperr.Error{
		Message: "buffer holds %d bytes, schema needs %d",
	}

	ErrFieldTooLarge = &apperr.Error{
		Message: "%s: stored length %d exceeds maximum %d",
	}

	errDuplicateID = &apperr.Error{
		Message: "duplicate field id %d (%s)",
	}

	errVariableTooWide = &apperr.Error{
		Message: "%s: variable field wider than %d bytes",
	}

	ErrReplaceField = &apperr.Error{
		Message: "restoring %s",
	}
)

// ID identifies a field independently of its position.
type ID uint8

// Entry binds an identifier and a name to a field.
type Entry struct {
	Field Field
	Name  string
	ID    ID
}

// Slot describes where an entry lives inside a serialized record.
type Slot struct {
	Name   string
	Offset int
	Width  int
	ID     ID
}

// Schema is an ordered list of entries tagged with a version. The same
// Schema value must be used to write and read a record: the encoding carries
// no field names or types.
type Schema struct {
	entries []Entry
	Version uint8
}

// NewSchema validates entries and returns a schema that visits them in the
// given order.
func NewSchema(version uint8, entries ...Entry) (*Schema, error) {
	seen := make(map[ID]bool, len(entries))

	for _, e := range entries {
		if seen[e.ID] {
			return nil, errDuplicateID.Fmt(e.ID, e.Name)
		}

		seen[e.ID] = true

		if e.Field.Variable() && e.Field.MaxSize() > 0xff {
			return nil, errVariableTooWide.Fmt(e.Name, 0xff)
		}
	}

	return &Schema{
		Version: version,
		entries: entries,
	}, nil
}

// Entries returns the entries in declared order.
func (s *Schema) Entries() []Entry {
	return s.entries
}

// Lookup returns the entry with the given id.
func (s *Schema) Lookup(id ID) (Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}

	return Entry{}, false
}

// LookupName returns the entry with the given name.
func (s *Schema) LookupName(name string) (Entry, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}

	return Entry{}, false
}

// Layout returns the static slot of every entry. A variable field's slot
// starts at its length prefix.
func (s *Schema) Layout() []Slot {
	slots := make([]Slot, 0, len(s.entries))
	offset := 0

	for _, e := range s.entries {
		w := slotWidth(e.Field)

		slots = append(slots, Slot{
			ID:     e.ID,
			Name:   e.Name,
			Offset: offset,
			Width:  w,
		})

		offset += w
	}

	return slots
}

// SizeToStore returns the number of bytes a serialized record occupies.
func (s *Schema) SizeToStore() int {
	size := 0

	for _, e := range s.entries {
		size += slotWidth(e.Field)
	}

	return size
}

func slotWidth(f Field) int {
	if f.Variable() {
		return lengthPrefixSize + f.MaxSize()
	}

	return f.MaxSize()
}
