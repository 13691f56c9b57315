package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidRecord       = errors.New("invalid record")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrSerialization       = errors.New("serialization failed")
)

// Kind classifies an AppError for operators reading the run output
type Kind string

const (
	KindInvalidRecord Kind = "invalid_record"
	KindStorage       Kind = "storage"
	KindConstraint    Kind = "constraint"
	KindSerialization Kind = "serialization"
	KindNotFound      Kind = "not_found"
)

var kindSentinels = map[Kind]error{
	KindInvalidRecord: ErrInvalidRecord,
	KindStorage:       ErrStorageUnavailable,
	KindConstraint:    ErrConstraintViolation,
	KindSerialization: ErrSerialization,
	KindNotFound:      ErrNotFound,
}

// AppError represents a seed run failure with the record it concerns, if any.
// errors.Is matches both the sentinel of its Kind and the wrapped cause.
type AppError struct {
	Kind     Kind
	RecordID string
	Message  string
	Err      error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.RecordID != "" {
		msg = fmt.Sprintf("record %q: %s", e.RecordID, msg)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AppError) Unwrap() []error {
	var errs []error
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError creates a new app error
func NewAppError(kind Kind, recordID, message string, err error) *AppError {
	return &AppError{
		Kind:     kind,
		RecordID: recordID,
		Message:  message,
		Err:      err,
	}
}

// Common error constructors
func InvalidRecord(recordID, message string) *AppError {
	return NewAppError(KindInvalidRecord, recordID, message, nil)
}

func StorageUnavailable(message string, err error) *AppError {
	return NewAppError(KindStorage, "", message, err)
}

func ConstraintViolation(recordID string, err error) *AppError {
	return NewAppError(KindConstraint, recordID, "write rejected", err)
}

func Serialization(recordID, message string, err error) *AppError {
	return NewAppError(KindSerialization, recordID, message, err)
}

func NotFound(recordID string) *AppError {
	return NewAppError(KindNotFound, recordID, "not found", nil)
}

// KindOf returns the kind of the first AppError in err's chain, or "" if none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
