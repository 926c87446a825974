package snippet

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Convert converts extended-format snippet definitions into the strict
// JSON format, reading any external body files from the filesystem.
func Convert(input string) (string, error) {
	return ConvertWithSource(input, SourceFileLines)
}

// ConvertWithSource is Convert with the reading of external body files
// under the caller's control.
func ConvertWithSource(input string,
	readSource func(path string) ([]string, error),
) (string, error) {
	c, err := Parse(input)
	if err != nil {
		return "", err
	}

	if err := c.Resolve(readSource); err != nil {
		return "", err
	}

	return c.Serialize()
}

// Serialize returns the collection as strict-format JSON text: 2-space
// indentation, snippet names and attribute names in declaration order
// and no trailing newline.
func (c *Collection) Serialize() (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(c); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// MarshalJSON serializes the collection as a JSON object whose keys
// appear in declaration order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for p := c.snippets.Oldest(); p != nil; p = p.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON serializes the snippet's attributes, in declaration order,
// as a JSON object.
func (s *S) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for p := s.attrs.Oldest(); p != nil; p = p.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeMember writes one key/value object member to buf. Snippet bodies
// must survive the round trip to JSON unmangled so HTML escaping is
// disabled.
func writeMember(buf *bytes.Buffer, key string, value any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(key); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode adds a newline

	buf.WriteByte(':')

	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)

	return nil
}
