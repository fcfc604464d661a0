package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateUsername   = errors.New("username already registered")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrUsernameUnavailable = errors.New("username unavailable")
	ErrInvalidBody         = errors.New("post body must be between 1 and 140 characters")
	ErrIdentityNotFound    = errors.New("user not found")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

// storageErr tags a database failure so callers can match it with errors.Is.
// Retrying, if wanted at all, is the caller's business.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
