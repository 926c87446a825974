package snippet

import (
	"fmt"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// The attribute names with converter-specific meaning. BodyAttr is the
// only one of these that appears in the converted output; the others are
// convenience attributes which are resolved away.
const (
	BodyAttr         = "body"
	SourceAttr       = "source"
	RangeAttr        = "range"
	TrimLeadingAttr  = "trim_leading_blank_lines"
	TrimTrailingAttr = "trim_trailing_blank_lines"
)

// S records the details of a single snippet definition. The pass-through
// attributes are held in declaration order; the convenience attributes
// are held in typed fields and so can never appear in serialized output.
type S struct {
	name  string
	attrs *orderedmap.OrderedMap[string, any]

	source       string
	hasSource    bool
	lineRange    []int
	trimLeading  bool
	trimTrailing bool
}

// newSnippet returns a snippet with the given name and no attributes.
func newSnippet(name string) *S {
	return &S{
		name:  name,
		attrs: orderedmap.New[string, any](),
	}
}

// Name returns the snippet name.
func (s *S) Name() string {
	return s.name
}

// Attr returns the value of the named pass-through attribute and whether
// the attribute is present. Convenience attributes are never present.
func (s *S) Attr(name string) (any, bool) {
	return s.attrs.Get(name)
}

// AttrNames returns the pass-through attribute names in declaration
// order.
func (s *S) AttrNames() []string {
	names := make([]string, 0, s.attrs.Len())
	for p := s.attrs.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}

	return names
}

// Body returns a copy of the resolved body lines. It returns false until
// the snippet has been resolved.
func (s *S) Body() ([]string, bool) {
	v, ok := s.attrs.Get(BodyAttr)
	if !ok {
		return nil, false
	}

	lines, ok := v.([]string)
	if !ok {
		return nil, false
	}

	rval := make([]string, len(lines))
	copy(rval, lines)

	return rval, true
}

// Source returns the source file path and whether one remains to be
// resolved.
func (s *S) Source() (string, bool) {
	return s.source, s.hasSource
}

// Range returns the line range and whether one remains to be resolved.
func (s *S) Range() ([]int, bool) {
	return s.lineRange, s.lineRange != nil
}

// Resolve replaces the snippet's raw body with its final line sequence.
// The convenience attributes are applied in a fixed order - body
// acquisition, range cropping, leading-blank trimming, trailing-blank
// trimming - and each is discarded as it is used. readSource supplies the
// lines of an external body file. Resolving a snippet with no convenience
// attributes leaves its body lines unchanged.
func (s *S) Resolve(readSource func(path string) ([]string, error)) error {
	body, err := s.acquireBody(readSource)
	if err != nil {
		return err
	}

	if s.lineRange != nil {
		body, err = cropToRange(body, s.lineRange)
		if err != nil {
			return err
		}
		s.lineRange = nil
	}

	if s.trimLeading {
		for len(body) > 0 && body[0] == "" {
			body = body[1:]
		}
		s.trimLeading = false
	}

	if s.trimTrailing {
		for len(body) > 0 && body[len(body)-1] == "" {
			body = body[:len(body)-1]
		}
		s.trimTrailing = false
	}

	if body == nil {
		body = []string{}
	}
	s.attrs.Set(BodyAttr, body)

	return nil
}

// acquireBody returns the body lines prior to cropping and trimming. A
// source file takes precedence over an inline body; the path is
// discarded once the file has been read.
func (s *S) acquireBody(readSource func(path string) ([]string, error)) (
	[]string, error,
) {
	if s.hasSource {
		lines, err := readSource(s.source)
		if err != nil {
			return nil, err
		}
		s.source, s.hasSource = "", false

		return lines, nil
	}

	v, ok := s.attrs.Get(BodyAttr)
	if !ok {
		return nil, &ConfigError{
			Attr:   BodyAttr,
			Reason: "the snippet has neither a body nor a source",
		}
	}

	if lines, ok := v.([]string); ok {
		return lines, nil
	}

	text, ok := v.(string)
	if !ok {
		return nil, &ConfigError{
			Attr:   BodyAttr,
			Reason: fmt.Sprintf("the body must be text, not %T", v),
		}
	}

	return strings.Split(text, "\n"), nil
}

// cropToRange selects the 1-indexed, inclusive line range from body. An
// end beyond the last line truncates silently; a start beyond the last
// line selects nothing.
func cropToRange(body []string, r []int) ([]string, error) {
	if len(r) != 2 {
		return nil, &ConfigError{
			Attr: RangeAttr,
			Reason: fmt.Sprintf(
				"a range must give a start line and an end line,"+
					" not %d values",
				len(r)),
		}
	}

	start, end := r[0], r[1]
	if start < 1 {
		return nil, &ConfigError{
			Attr: RangeAttr,
			Reason: fmt.Sprintf(
				"the start line must be at least 1, not %d", start),
		}
	}
	if start > end {
		return nil, &ConfigError{
			Attr: RangeAttr,
			Reason: fmt.Sprintf(
				"the start line (%d) must not be after the end line (%d)",
				start, end),
		}
	}

	if start > len(body) {
		return []string{}, nil
	}
	if end > len(body) {
		end = len(body)
	}

	return body[start-1 : end], nil
}

// SourceFileLines reads the named file and returns its lines. The file is
// fully read and released before returning. Any read failure is returned
// as a SourceReadError.
func SourceFileLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceReadError{Path: path, Err: err}
	}

	return fileLines(string(content)), nil
}

// fileLines splits file content on line boundaries. Unlike an inline
// body, a file's final newline ends the last line rather than starting an
// empty one.
func fileLines(content string) []string {
	if content == "" {
		return []string{}
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")

	return strings.Split(content, "\n")
}
