package document

import "fmt"

// UnsupportedVersionError reports a document written by a different format
// version.
type UnsupportedVersionError struct {
	Found int
	Want  int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("document version %d is not supported, want %d", e.Found, e.Want)
}
