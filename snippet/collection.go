package snippet

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nickwells/errutil.mod/errutil"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection holds snippets by name, preserving declaration order.
type Collection struct {
	snippets *orderedmap.OrderedMap[string, *S]
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		snippets: orderedmap.New[string, *S](),
	}
}

// Add stores the snippet under its name. Adding a name already in the
// collection replaces the earlier snippet but keeps its position.
func (c *Collection) Add(s *S) {
	c.snippets.Set(s.name, s)
}

// Get retrieves the named snippet from the collection.
func (c *Collection) Get(name string) (*S, bool) {
	return c.snippets.Get(name)
}

// Len returns the number of snippets in the collection.
func (c *Collection) Len() int {
	return c.snippets.Len()
}

// Names returns the snippet names in declaration order.
func (c *Collection) Names() []string {
	names := make([]string, 0, c.snippets.Len())
	for p := c.snippets.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}

	return names
}

// Parse parses extended-format snippet definitions into a Collection.
// Each top-level table becomes a snippet; the convenience attributes are
// decoded into typed fields and the rest are kept, in declaration order,
// for passing through to the output.
func Parse(text string) (*Collection, error) {
	var raw map[string]map[string]toml.Primitive

	md, err := toml.Decode(text, &raw)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	c := NewCollection()

	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]

		prims, ok := raw[name]
		if !ok {
			continue
		}

		s, err := parseSnippet(md, name, prims)
		if err != nil {
			return nil, fmt.Errorf("snippet %q: %w", name, err)
		}
		c.Add(s)
	}

	return c, nil
}

// parseSnippet decodes one snippet table. md.Keys holds every key in the
// order it appears in the document; the keys of length two belonging to
// this table give the attribute declaration order.
func parseSnippet(md toml.MetaData, name string,
	prims map[string]toml.Primitive,
) (*S, error) {
	s := newSnippet(name)

	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != name {
			continue
		}

		attr := key[1]
		prim, ok := prims[attr]
		if !ok {
			continue
		}

		if err := s.setAttr(md, attr, prim); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// setAttr decodes a single attribute. Convenience attributes must have
// their documented types; anything else is kept as-is.
func (s *S) setAttr(md toml.MetaData, attr string, prim toml.Primitive) error {
	switch attr {
	case SourceAttr:
		if err := md.PrimitiveDecode(prim, &s.source); err != nil {
			return &ConfigError{
				Attr:   attr,
				Reason: "the source must be a file path string",
			}
		}
		s.hasSource = true
	case RangeAttr:
		if err := md.PrimitiveDecode(prim, &s.lineRange); err != nil {
			return &ConfigError{
				Attr:   attr,
				Reason: "the range must be an array of two line numbers",
			}
		}
	case TrimLeadingAttr:
		if err := md.PrimitiveDecode(prim, &s.trimLeading); err != nil {
			return &ConfigError{
				Attr:   attr,
				Reason: "the value must be a boolean",
			}
		}
	case TrimTrailingAttr:
		if err := md.PrimitiveDecode(prim, &s.trimTrailing); err != nil {
			return &ConfigError{
				Attr:   attr,
				Reason: "the value must be a boolean",
			}
		}
	case BodyAttr:
		var body string
		if err := md.PrimitiveDecode(prim, &body); err != nil {
			return &ConfigError{
				Attr:   attr,
				Reason: "the body must be text",
			}
		}
		s.attrs.Set(attr, body)
	default:
		var v any
		if err := md.PrimitiveDecode(prim, &v); err != nil {
			return &ConfigError{Attr: attr, Reason: err.Error()}
		}
		s.attrs.Set(attr, v)
	}

	return nil
}

// Resolve resolves every snippet in the collection, in declaration
// order, using readSource to supply the lines of external body files.
// The first failure stops the conversion; the error names the snippet.
func (c *Collection) Resolve(
	readSource func(path string) ([]string, error),
) error {
	for p := c.snippets.Oldest(); p != nil; p = p.Next() {
		if err := p.Value.Resolve(readSource); err != nil {
			return fmt.Errorf("snippet %q: %w", p.Key, err)
		}
	}

	return nil
}

// Check records in em every snippet whose convenience attributes violate
// their contracts. Unlike Resolve it examines every snippet and reads no
// source files.
func (c *Collection) Check(em *errutil.ErrMap) {
	for p := c.snippets.Oldest(); p != nil; p = p.Next() {
		s := p.Value

		if !s.hasSource {
			if _, ok := s.attrs.Get(BodyAttr); !ok {
				em.AddError("Missing body",
					fmt.Errorf("snippet %q has neither a body nor a source",
						p.Key))
			}
		}

		if s.lineRange != nil {
			if _, err := cropToRange(nil, s.lineRange); err != nil {
				em.AddError("Bad range",
					fmt.Errorf("snippet %q: %w", p.Key, err))
			}
		}
	}
}
