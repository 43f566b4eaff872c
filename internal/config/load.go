package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the decoder used for a configuration file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// For mocking in tests
var readFile = os.ReadFile

var errEmptyDocument = errors.New("empty document")

// FormatForPath picks JSON for ".json" files and YAML for everything else.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads an ordered configuration document from path.
func Load(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	doc, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes data into a Document. The top level must be a mapping.
func Parse(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyDocument
	}

	var (
		root *Section
		err  error
	)
	switch format {
	case FormatJSON:
		root, err = decodeJSON(data)
	default:
		root, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// decodeYAML walks a yaml.Node tree, which keeps key order and duplicate keys.
func decodeYAML(data []byte) (*Section, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	n := &doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, errEmptyDocument
		}
		n = n.Content[0]
	}
	if n.Kind == 0 {
		return nil, errEmptyDocument
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", n.Line)
	}
	return yamlMapping(n, "")
}

func yamlMapping(n *yaml.Node, name string) (*Section, error) {
	s := &Section{Name: name}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		v, err := yamlValue(n.Content[i+1], k.Value)
		if err != nil {
			return nil, err
		}
		s.add(k.Value, v)
	}
	return s, nil
}

func yamlValue(n *yaml.Node, key string) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias, key)
	case yaml.ScalarNode:
		return Value{Kind: KindScalar, Scalar: yamlScalar(n)}, nil
	case yaml.MappingNode:
		s, err := yamlMapping(n, key)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindSection, Section: s}, nil
	case yaml.SequenceNode:
		list := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind == yaml.AliasNode {
				item = item.Alias
			}
			if item.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: list %q must hold scalars", item.Line, key)
			}
			list = append(list, yamlScalar(item))
		}
		return Value{Kind: KindList, List: list}, nil
	default:
		return Value{}, fmt.Errorf("line %d: unsupported value for %q", n.Line, key)
	}
}

func yamlScalar(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

// decodeJSON walks the token stream so object member order is preserved.
func decodeJSON(data []byte) (*Section, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("top level must be an object")
	}
	root, err := decodeJSONObject(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}
	return root, nil
}

func decodeJSONObject(dec *json.Decoder, name string) (*Section, error) {
	s := &Section{Name: name}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("offset %d: object key must be a string", dec.InputOffset())
		}
		v, err := decodeJSONValue(dec, key)
		if err != nil {
			return nil, err
		}
		s.add(key, v)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeJSONValue(dec *json.Decoder, key string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	delim, isDelim := tok.(json.Delim)
	if !isDelim {
		s, _ := jsonScalar(tok)
		return Value{Kind: KindScalar, Scalar: s}, nil
	}

	switch delim {
	case '{':
		s, err := decodeJSONObject(dec, key)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindSection, Section: s}, nil
	case '[':
		list := []string{}
		for dec.More() {
			item, err := dec.Token()
			if err != nil {
				return Value{}, err
			}
			s, ok := jsonScalar(item)
			if !ok {
				return Value{}, fmt.Errorf("offset %d: list %q must hold scalars", dec.InputOffset(), key)
			}
			list = append(list, s)
		}
		// closing ']'
		if _, err := dec.Token(); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindList, List: list}, nil
	default:
		return Value{}, fmt.Errorf("offset %d: unexpected %q", dec.InputOffset(), delim)
	}
}

func jsonScalar(tok json.Token) (string, bool) {
	switch t := tok.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "", true
	default:
		return "", false
	}
}
