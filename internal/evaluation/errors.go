package evaluation

import "fmt"

// InvalidIdentifierError indicates a lookup identifier that is not a
// positive integer. It is raised before the store is queried.
type InvalidIdentifierError struct {
	Raw    string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Raw, e.Reason)
}

// StorageError wraps a failure from the record store.
// The cause is kept as-is so callers can inspect it with errors.Is/As.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
