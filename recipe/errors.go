package recipe

import "fmt"

// StorageError reports that persisted recipes could not be read, parsed or
// written. Op is one of "load", "save" or "init".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("recipe storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
