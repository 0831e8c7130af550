package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// FileLoader reads documents relative to a base directory on an afero filesystem.
type FileLoader struct {
	fs      afero.Fs
	baseDir string
	logger  *logrus.Entry
}

func NewFileLoader(fsys afero.Fs, baseDir string) *FileLoader {
	return &FileLoader{
		fs:      fsys,
		baseDir: baseDir,
		logger:  logrus.WithField("component", "loader"),
	}
}

// NewExecutableLoader reads documents relative to the directory of the running executable.
func NewExecutableLoader() (*FileLoader, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return NewFileLoader(afero.NewOsFs(), filepath.Dir(exe)), nil
}

func (f *FileLoader) LoadText(ctx context.Context, relativePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := resolve(f.baseDir, relativePath)
	if err != nil {
		return "", err
	}

	f.logger.WithField("file", full).Debug("reading catalog document")
	data, err := afero.ReadFile(f.fs, full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: relativePath, Location: f.baseDir}
		}
		return "", fmt.Errorf("failed to read %s: %w", full, err)
	}
	return string(data), nil
}

func (f *FileLoader) String() string {
	return "file://" + filepath.ToSlash(f.baseDir)
}

// resolve joins a slash-separated logical path onto baseDir.
func resolve(baseDir, logical string) (string, error) {
	if logical == "" {
		return "", fmt.Errorf("%w: empty document path", ErrInvalidConfig)
	}
	cleaned := path.Clean(strings.ReplaceAll(logical, `\`, "/"))
	if path.IsAbs(cleaned) {
		return filepath.FromSlash(cleaned), nil
	}
	return filepath.Join(baseDir, filepath.FromSlash(cleaned)), nil
}
