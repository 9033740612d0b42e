package commands

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a metadata document was rejected
type ErrorKind string

const (
	ErrMissingField  ErrorKind = "missing_field"
	ErrWrongType     ErrorKind = "wrong_type"
	ErrInvalidTag    ErrorKind = "invalid_tag"
	ErrNameMismatch  ErrorKind = "name_mismatch"
	ErrEmptyField    ErrorKind = "empty_field"
	ErrPlaceholder   ErrorKind = "placeholder_detected"
	ErrInvalidEmail  ErrorKind = "invalid_email"
	ErrEmptyProvides ErrorKind = "empty_provides"
	ErrAssetNotFound ErrorKind = "asset_not_found"
	ErrUnsafePath    ErrorKind = "unsafe_path"
)

// ValidationError reports the first rule a metadata document violated.
// Key names the offending field or asset path; Detail carries the
// human-readable explanation.
type ValidationError struct {
	Kind   ErrorKind
	Key    string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s", e.Key, e.Detail)
	}
	return e.Detail
}

// validationErrorf builds a ValidationError for the given kind and key
func validationErrorf(kind ErrorKind, key, format string, args ...interface{}) error {
	return &ValidationError{Kind: kind, Key: key, Detail: fmt.Sprintf(format, args...)}
}

// ErrNotAllowlisted is returned when a repository is absent from the allowlist
var ErrNotAllowlisted = errors.New("repository is not on the allowlist")
