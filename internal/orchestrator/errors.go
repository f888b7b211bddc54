package orchestrator

import "fmt"

// ValidationError reports a user-correctable problem with the creation
// request. Nothing is uploaded, minted or persisted when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports that the token was minted but the record
// store could not persist it. The mint exists on chain; the caller must
// surface this distinctly from a failed creation.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("token minted but not persisted: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
