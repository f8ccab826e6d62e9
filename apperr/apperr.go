package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies an error class that callers can act on.
// The string values are surfaced verbatim as error_code in API responses.
type Kind string

const (
	DBConnectionFailed   Kind = "DB_CONNECTION_FAILED"
	DBTranscriptNotFound Kind = "DB_TRANSCRIPT_NOT_FOUND"
	DBArticleNotFound    Kind = "DB_ARTICLE_NOT_FOUND"
	GPTAPIUnauthorized   Kind = "GPT_API_UNAUTHORIZED"
	GPTAPITimeout        Kind = "GPT_API_TIMEOUT"
	GPTAPIQuotaExceeded  Kind = "GPT_API_QUOTA_EXCEEDED"
	InvalidJSONResponse  Kind = "INVALID_JSON_RESPONSE"
	ProcessingFailed     Kind = "PROCESSING_FAILED"
	InternalServerError  Kind = "INTERNAL_SERVER_ERROR"
)

// Error is a kind-tagged error. Components fail with the most specific kind
// available; downstream code never reclassifies it into a broader one.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a kind-tagged error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
// If err is already kind-tagged, the original kind is preserved and only the
// message context is added, so the most specific classification survives.
func Wrap(err error, kind Kind, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	var ae *Error
	if errors.As(err, &ae) {
		kind = ae.Kind
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of err, or InternalServerError for untagged errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return InternalServerError
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// MessageOf returns the tagged message of err, or err.Error() for untagged
// errors. Used to build the user-facing error envelope.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
