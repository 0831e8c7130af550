// Package loader resolves logical catalog document paths to document text.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("loader: document not found")
	ErrGCSNotEnabled = errors.New("loader: GCS support not enabled - build with -tags gcs")
	ErrInvalidConfig = errors.New("loader: invalid configuration")
)

// Loader returns the text stored at a logical, slash-separated relative path.
type Loader interface {
	LoadText(ctx context.Context, path string) (string, error)

	// String returns a human-readable description of where documents are read from.
	String() string
}

// NotFoundError wraps ErrNotFound with the location that was searched.
type NotFoundError struct {
	Path     string
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("loader: %q not found in %s", e.Path, e.Location)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// LoadLines loads path through l and splits it into lines. Both \n and \r\n are accepted.
func LoadLines(ctx context.Context, l Loader, path string) ([]string, error) {
	text, err := l.LoadText(ctx, path)
	if err != nil {
		return nil, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

// chain tries each loader in order, moving on only when a loader reports ErrNotFound.
type chain []Loader

// FirstOf returns a Loader that consults loaders in order and returns the first document found.
func FirstOf(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) LoadText(ctx context.Context, path string) (string, error) {
	for _, l := range c {
		text, err := l.LoadText(ctx, path)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", &NotFoundError{Path: path, Location: c.String()}
}

func (c chain) String() string {
	names := make([]string, 0, len(c))
	for _, l := range c {
		names = append(names, l.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
