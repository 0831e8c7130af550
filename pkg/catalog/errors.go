package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentRetrieval = errors.New("catalog: document could not be retrieved")
	ErrMalformedDocument = errors.New("catalog: malformed document")
)

// RetrievalError wraps a loader failure with the logical path that was requested.
type RetrievalError struct {
	Path string
	Err  error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("catalog: failed to load %s: %v", e.Path, e.Err)
}

func (e *RetrievalError) Is(target error) bool {
	return target == ErrDocumentRetrieval
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func NewRetrievalError(path string, err error) *RetrievalError {
	return &RetrievalError{Path: path, Err: err}
}

// SchemaError reports a required field that is missing or has the wrong type.
// Field is a dotted location such as "Groups[1].Items[0].Content".
type SchemaError struct {
	Field   string
	Message string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("catalog: malformed document: %s", e.Message)
	}
	return fmt.Sprintf("catalog: malformed document at %s: %s", e.Field, e.Message)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func NewSchemaError(field, message string) *SchemaError {
	return &SchemaError{Field: field, Message: message}
}
