package services

import "fmt"

// wrapf attaches context to one of the entities.Err* kinds while keeping it
// matchable with errors.Is.
func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
