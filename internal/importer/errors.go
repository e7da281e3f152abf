package importer

import "fmt"

// MissingOwnerError is returned when a document carries owner-scoped
// records but no resolvable owner account id.
type MissingOwnerError struct{}

func (e *MissingOwnerError) Error() string {
	return "archive owner account id is required to import owner-scoped records"
}

// CrossOwnerConflictError is returned when an import asserts a different
// owner for a post id that already belongs to another account. A post id
// is owned by exactly one account for the lifetime of the store.
type CrossOwnerConflictError struct {
	PostID        string
	ExistingOwner string
	IncomingOwner string
}

func (e *CrossOwnerConflictError) Error() string {
	return fmt.Sprintf("post %s is owned by account %s, refusing import for account %s",
		e.PostID, e.ExistingOwner, e.IncomingOwner)
}
