package errors

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

const (
	// UnknownCode is used when an error has no HTTP status attached.
	UnknownCode       = 0
	MetadataSeparator = ", "
	MetadataPrefix    = "metadata={"
	MetadataSuffix    = "}"
	CausePrefix       = "cause="
)

// Metadata keys attached by the request client.
const (
	MetaMethod    = "method"
	MetaEndpoint  = "endpoint"
	MetaRequestID = "request_id"
)

// Status is the serializable part of an Error.
type Status struct {
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error is a structured failure carrying the HTTP status (when a response
// was received), a caller-facing message, call metadata, a Kind and the
// underlying cause.
type Error struct {
	Status
	kind  Kind
	cause error
}

// Error returns the message verbatim. Use Detail for the full record.
func (e *Error) Error() string {
	return e.Message
}

// Detail renders code, kind, metadata and cause in a single line.
func (e *Error) Detail() string {
	var msg strings.Builder

	msg.WriteString("code=")
	msg.WriteString(strconv.Itoa(e.Code))
	msg.WriteString(MetadataSeparator)
	msg.WriteString("kind=")
	msg.WriteString(e.kind.String())
	msg.WriteString(MetadataSeparator)
	msg.WriteString("message=")
	msg.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		msg.WriteString(MetadataSeparator)
		msg.WriteString(MetadataPrefix)
		first := true
		for _, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			if !first {
				msg.WriteString(", ")
			}
			msg.WriteString(k)
			msg.WriteByte('=')
			msg.WriteString(e.Metadata[k])
			first = false
		}
		msg.WriteString(MetadataSuffix)
	}

	if e.cause != nil {
		msg.WriteString(MetadataSeparator)
		msg.WriteString(CausePrefix)
		msg.WriteString(e.cause.Error())
	}

	return msg.String()
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithMetadata returns a copy with m merged into the metadata.
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}

	err := e.clone()
	if err.Metadata == nil {
		err.Metadata = make(map[string]string, len(m))
	}

	maps.Copy(err.Metadata, m)
	return err
}

// WithCause returns a copy with cause attached.
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}

	err := e.clone()
	err.cause = cause
	return err
}

// WithKind returns a copy classified as k.
func (e *Error) WithKind(k Kind) *Error {
	if e.kind == k {
		return e
	}

	err := e.clone()
	err.kind = k
	return err
}

func (e *Error) clone() *Error {
	var metadata map[string]string
	if len(e.Metadata) > 0 {
		metadata = make(map[string]string, len(e.Metadata))
		maps.Copy(metadata, e.Metadata)
	}

	return &Error{
		Status: Status{
			Code:     e.Code,
			Message:  e.Message,
			Metadata: metadata,
		},
		kind:  e.kind,
		cause: e.cause,
	}
}

// Is reports whether err is an *Error with the same code and message.
func (e *Error) Is(err error) bool {
	if ge, ok := AsError(err); ok {
		return e.Code == ge.Code && e.Message == ge.Message
	}
	return false
}

// GetCode returns the HTTP status, or UnknownCode when no response was read.
func (e *Error) GetCode() int {
	return e.Code
}

// GetMessage returns the error message
func (e *Error) GetMessage() string {
	return e.Message
}

// GetMetadata returns a copy of the metadata.
func (e *Error) GetMetadata() map[string]string {
	if len(e.Metadata) == 0 {
		return nil
	}

	result := make(map[string]string, len(e.Metadata))
	maps.Copy(result, e.Metadata)
	return result
}

// GetCause returns the underlying cause of the error
func (e *Error) GetCause() error {
	return e.cause
}

// Kind returns the failure class.
func (e *Error) Kind() Kind {
	return e.kind
}

// New creates an error with the given code and formatted message.
func New(code int, format string, args ...any) *Error {
	var message string
	if len(args) == 0 {
		message = format
	} else {
		message = fmt.Sprintf(format, args...)
	}

	return &Error{
		Status: Status{
			Code:    code,
			Message: message,
		},
	}
}

// Newk creates an error of kind k.
func Newk(k Kind, code int, format string, args ...any) *Error {
	err := New(code, format, args...)
	err.kind = k
	return err
}

// FromError converts a generic error to *Error, keeping it as the cause.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	if ge, ok := AsError(err); ok {
		return ge
	}

	return New(UnknownCode, "%v", err).WithCause(err)
}

// Wrap wraps err with a new code and message. Returns nil if err is nil.
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}

	return New(code, format, args...).WithCause(err)
}
