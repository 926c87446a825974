package snippet

import "fmt"

// ParseError reports that the input text is not valid extended-format
// snippet definitions.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "the snippet definitions cannot be parsed: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports a convenience attribute which violates its
// contract.
type ConfigError struct {
	Attr   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad %q: %s", e.Attr, e.Reason)
}

// SourceReadError reports a snippet source file which cannot be read.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("the snippet source file %q cannot be read: %s",
		e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// DestinationExistsError reports a refusal to replace an existing
// destination file.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf(
		"the destination file %q already exists;"+
			" pass the overwrite flag to replace it",
		e.Path)
}
