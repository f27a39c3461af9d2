package domain

import "errors"

// ErrorKind classifies engine failures.
type ErrorKind string

const (
	KindEmptyInput           ErrorKind = "EmptyInput"
	KindMissingKey           ErrorKind = "MissingKey"
	KindInvalidKey           ErrorKind = "InvalidKey"
	KindCorruptInput         ErrorKind = "CorruptInput"
	KindUnsupportedAlgorithm ErrorKind = "UnsupportedAlgorithm"
)

// Sentinels for errors.Is; they match any EngineError of the same kind.
var (
	ErrEmptyInput           = &EngineError{Kind: KindEmptyInput, Message: "no text to process"}
	ErrMissingKey           = &EngineError{Kind: KindMissingKey, Message: "a key is required for this algorithm"}
	ErrInvalidKey           = &EngineError{Kind: KindInvalidKey, Message: "invalid key"}
	ErrCorruptInput         = &EngineError{Kind: KindCorruptInput, Message: "corrupt input"}
	ErrUnsupportedAlgorithm = &EngineError{Kind: KindUnsupportedAlgorithm, Message: "unsupported algorithm"}
)

// EngineError is returned by the engine and every cipher.
type EngineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError builds an EngineError of the sentinel's kind with a custom message.
func NewError(sentinel *EngineError, message string) *EngineError {
	return &EngineError{Kind: sentinel.Kind, Message: message}
}

// WrapError is NewError with an underlying cause kept for Unwrap.
func WrapError(sentinel *EngineError, message string, cause error) *EngineError {
	return &EngineError{Kind: sentinel.Kind, Message: message, Err: cause}
}

func (e *EngineError) Error() string {
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is matches on kind so errors.Is(err, ErrMissingKey) works for any message.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the kind of an engine error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var e *EngineError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
