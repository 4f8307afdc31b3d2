package importer

import (
	"errors"
	"fmt"
)

// ErrStructural marks a file that cannot be imported at all.
var ErrStructural = errors.New("file structure is invalid")

var (
	ErrNoHeaderRow     = fmt.Errorf("%w: file has no header row", ErrStructural)
	ErrUnsupportedFile = fmt.Errorf("%w: unsupported file type", ErrStructural)
	ErrUnreadableFile  = fmt.Errorf("%w: file could not be read", ErrStructural)
	ErrFileTooLarge    = fmt.Errorf("%w: file exceeds the upload limit", ErrStructural)
)

var (
	ErrSessionNotFound    = errors.New("import session not found")
	ErrInvalidTransition  = errors.New("import step transition not allowed")
	ErrUnknownField       = errors.New("unknown import field")
	ErrColumnOutOfRange   = errors.New("column index is out of range")
	ErrColumnAlreadyBound = errors.New("column is already mapped to another field")
	ErrMappingIncomplete  = errors.New("every field must be mapped before preview")
	ErrUnresolvedRows     = errors.New("import has rows with errors")
)
