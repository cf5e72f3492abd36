// Package domain holds the shared error vocabulary for the admin service.
// Every failure that crosses a service boundary is one of these kinds,
// carries the resource it is scoped to, and keeps the underlying cause
// wrapped for logging.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error.
type ErrorKind string

const (
	// KindLoadFailure means a read against the backend failed.
	KindLoadFailure ErrorKind = "load_failure"
	// KindNotFound means a single-row fetch matched nothing.
	KindNotFound ErrorKind = "not_found"
	// KindWriteFailure means an insert, update or delete failed.
	KindWriteFailure ErrorKind = "write_failure"
	// KindUploadFailure means an asset upload failed.
	KindUploadFailure ErrorKind = "upload_failure"
	// KindCompensationFailure means a row write succeeded, the follow-up
	// upload failed, and the compensating delete failed too. The row is
	// left referencing an asset that does not exist.
	KindCompensationFailure ErrorKind = "compensation_failure"
	// KindValidation means the request itself was malformed.
	KindValidation ErrorKind = "validation"
)

// Error is a resource-scoped domain error with a human-readable message.
type Error struct {
	Kind     ErrorKind
	Resource string
	Message  string
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// NewLoadFailure reports a failed list or scan read.
func NewLoadFailure(resource string, cause error) *Error {
	return &Error{
		Kind:     KindLoadFailure,
		Resource: resource,
		Message:  fmt.Sprintf("%ss couldn't be loaded", resource),
		cause:    cause,
	}
}

// NewNotFound reports a single-row fetch that matched nothing.
func NewNotFound(resource string, id any) *Error {
	return &Error{
		Kind:     KindNotFound,
		Resource: resource,
		Message:  fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewWriteFailure reports a failed insert, update or delete. The action is
// the past participle shown to the operator ("created", "updated", "deleted").
func NewWriteFailure(resource, action string, cause error) *Error {
	return &Error{
		Kind:     KindWriteFailure,
		Resource: resource,
		Message:  fmt.Sprintf("%s couldn't be %s", resource, action),
		cause:    cause,
	}
}

// NewUploadFailure reports a failed asset upload.
func NewUploadFailure(resource string, cause error) *Error {
	return &Error{
		Kind:     KindUploadFailure,
		Resource: resource,
		Message:  fmt.Sprintf("%s image could not be uploaded", resource),
		cause:    cause,
	}
}

// NewCompensationFailure reports the worst case of the dual write: the row
// exists but its image upload failed and the compensating delete failed.
func NewCompensationFailure(resource string, cause error) *Error {
	return &Error{
		Kind:     KindCompensationFailure,
		Resource: resource,
		Message:  fmt.Sprintf("%s image upload failed and the %s row could not be removed", resource, resource),
		cause:    cause,
	}
}

// NewValidation reports a malformed request.
func NewValidation(resource, message string) *Error {
	return &Error{
		Kind:     KindValidation,
		Resource: resource,
		Message:  message,
	}
}

// KindOf returns the kind of err if it is a domain error, or "" otherwise.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
