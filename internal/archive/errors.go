package archive

import "fmt"

// MalformedArchiveError reports an unparsable container or fragment. It is
// fatal to the whole import.
type MalformedArchiveError struct {
	Fragment string
	Reason   string
}

// Error implements the error interface
func (e *MalformedArchiveError) Error() string {
	return fmt.Sprintf("malformed archive: %s: %s", e.Fragment, e.Reason)
}
