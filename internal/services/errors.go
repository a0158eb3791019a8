package services

import (
	"errors"
	"fmt"
)

// Error taxonomy for direct user actions. Handlers map these to HTTP status
// codes; background work never surfaces ErrNotFound (derived updates on
// vanished content are no-ops).
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func permissionErr(action string) error {
	return fmt.Errorf("%w: %s", ErrPermission, action)
}
