package config

import (
	"fmt"
)

// ValueKind identifies the shape of a configuration value.
type ValueKind int

const (
	KindScalar ValueKind = iota
	KindList
	KindSection
)

// String makes ValueKind satisfy the fmt.Stringer interface.
func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// Value is a scalar string, an ordered list of strings or a nested section.
type Value struct {
	Kind    ValueKind
	Scalar  string
	List    []string
	Section *Section
}

// Entry is one key/value pair of a section, kept in declaration order.
type Entry struct {
	Key   string
	Value Value
}

// Section is an ordered mapping. Keys may repeat; Lookup returns the first match.
type Section struct {
	Name    string
	entries []Entry
}

// Entries returns a copy of the section entries in declaration order.
func (s *Section) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries, duplicates included.
func (s *Section) Len() int { return len(s.entries) }

// Keys returns the entry keys in declaration order.
func (s *Section) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Lookup returns the first value stored under key.
func (s *Section) Lookup(key string) (Value, bool) {
	for _, e := range s.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// lookupLast returns the last value stored under key.
func (s *Section) lookupLast(key string) (Value, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Key == key {
			return s.entries[i].Value, true
		}
	}
	return Value{}, false
}

func (s *Section) add(key string, v Value) {
	s.entries = append(s.entries, Entry{Key: key, Value: v})
}

// Document is an ordered configuration file. It is read-only once loaded.
type Document struct {
	Path string
	root *Section
}

// Sections returns the distinct top-level names in order of first appearance.
// A repeated top-level name resolves to its last definition.
func (d *Document) Sections() []string {
	seen := make(map[string]bool, d.root.Len())
	names := make([]string, 0, d.root.Len())
	for _, name := range d.root.Keys() {
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// HasSection reports whether name is a top-level mapping.
func (d *Document) HasSection(name string) bool {
	_, err := d.Section(name)
	return err == nil
}

// HasOption reports whether section exists, is a mapping and holds option.
func (d *Document) HasOption(section, option string) bool {
	s, err := d.Section(section)
	if err != nil {
		return false
	}
	_, ok := s.Lookup(option)
	return ok
}

// Section returns the named top-level section.
func (d *Document) Section(name string) (*Section, error) {
	v, ok := d.root.lookupLast(name)
	if !ok {
		return nil, fmt.Errorf("section %q not found in %s", name, d.Path)
	}
	if v.Kind != KindSection {
		return nil, fmt.Errorf("section %q in %s is a %s, not a mapping", name, d.Path, v.Kind)
	}
	return v.Section, nil
}
