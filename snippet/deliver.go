package snippet

import (
	"fmt"
	"io"
	"os"
)

// Deliver writes the serialized snippet text to its destination: to w,
// with a trailing newline, when dest is empty and to the file named by
// dest otherwise. An existing destination file is only replaced when
// overwrite is true; otherwise nothing is written and a
// DestinationExistsError is returned.
func Deliver(w io.Writer, text, dest string, overwrite bool) error {
	if dest == "" {
		_, err := fmt.Fprintln(w, text)
		return err
	}

	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return &DestinationExistsError{Path: dest}
		}
	}

	return os.WriteFile(dest, []byte(text), 0o644)
}
