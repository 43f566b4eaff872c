package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Pair is an interpolated key/value entry of a section.
type Pair struct {
	Key   string
	Value string
}

// Reader extracts interpolated values from a Document. Each value is
// interpolated once, when it is read, against the reader's Context.
type Reader struct {
	doc    *Document
	interp *Interpolator
	ctx    Context
}

// NewReader creates a reader over doc. A nil interpolator uses DefaultRules.
func NewReader(doc *Document, interp *Interpolator, ctx Context) Reader {
	if interp == nil {
		interp = NewInterpolator()
	}
	return Reader{doc: doc, interp: interp, ctx: ctx}
}

// Context returns the context values are resolved against.
func (r Reader) Context() Context { return r.ctx }

// Document returns the underlying document.
func (r Reader) Document() *Document { return r.doc }

// WithContext returns a reader resolving against ctx.
func (r Reader) WithContext(ctx Context) Reader {
	r.ctx = ctx
	return r
}

// Has reports whether option exists in section.
func (r Reader) Has(section, option string) bool {
	return r.doc.HasOption(section, option)
}

func (r Reader) lookup(section, option string) (Value, error) {
	s, err := r.doc.Section(section)
	if err != nil {
		return Value{}, err
	}
	v, ok := s.Lookup(option)
	if !ok {
		return Value{}, fmt.Errorf("option %q missing from section %q", option, section)
	}
	return v, nil
}

// String reads a scalar option.
func (r Reader) String(section, option string) (string, error) {
	v, err := r.lookup(section, option)
	if err != nil {
		return "", err
	}
	if v.Kind != KindScalar {
		return "", fmt.Errorf("option %q in section %q is a %s, expected a scalar", option, section, v.Kind)
	}
	return r.interp.Interpolate(v.Scalar, r.ctx), nil
}

// Strings reads a list option. A scalar is returned as a one-element list.
func (r Reader) Strings(section, option string) ([]string, error) {
	v, err := r.lookup(section, option)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case KindList:
		return r.interp.InterpolateAll(v.List, r.ctx), nil
	case KindScalar:
		return []string{r.interp.Interpolate(v.Scalar, r.ctx)}, nil
	default:
		return nil, fmt.Errorf("option %q in section %q is a %s, expected a list", option, section, v.Kind)
	}
}

// Lines reads a newline-delimited scalar, or a list, as separate entries.
func (r Reader) Lines(section, option string) ([]string, error) {
	v, err := r.lookup(section, option)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case KindList:
		return r.interp.InterpolateAll(v.List, r.ctx), nil
	case KindScalar:
		return strings.Split(r.interp.Interpolate(v.Scalar, r.ctx), "\n"), nil
	default:
		return nil, fmt.Errorf("option %q in section %q is a %s, expected a string", option, section, v.Kind)
	}
}

// Int reads an integer option.
func (r Reader) Int(section, option string) (int, error) {
	s, err := r.String(section, option)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("option %q in section %q is not an integer: %w", option, section, err)
	}
	return n, nil
}

// Pairs reads every scalar entry of section in order, interpolating both keys
// and values. Duplicate keys each produce a pair.
func (r Reader) Pairs(section string) ([]Pair, error) {
	s, err := r.doc.Section(section)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, s.Len())
	for _, e := range s.entries {
		if e.Value.Kind != KindScalar {
			return nil, fmt.Errorf("entry %q in section %q is a %s, expected a scalar", e.Key, section, e.Value.Kind)
		}
		pairs = append(pairs, Pair{
			Key:   r.interp.Interpolate(e.Key, r.ctx),
			Value: r.interp.Interpolate(e.Value.Scalar, r.ctx),
		})
	}
	return pairs, nil
}
