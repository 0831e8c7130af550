package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// XDGLoader finds documents installed under <dataDir>/<appName> for each XDG data directory,
// searching $XDG_DATA_HOME first and then $XDG_DATA_DIRS.
type XDGLoader struct {
	fs      afero.Fs
	appName string
	dirs    []string
	logger  *logrus.Entry
}

func NewXDGLoader(appName string) *XDGLoader {
	dirs := append([]string{xdg.DataHome}, xdg.DataDirs...)
	return NewXDGLoaderWithDirs(afero.NewOsFs(), appName, dirs)
}

// NewXDGLoaderWithDirs searches the given data directories instead of the XDG defaults.
func NewXDGLoaderWithDirs(fsys afero.Fs, appName string, dirs []string) *XDGLoader {
	return &XDGLoader{
		fs:      fsys,
		appName: appName,
		dirs:    dirs,
		logger:  logrus.WithField("component", "loader"),
	}
}

func (x *XDGLoader) LoadText(ctx context.Context, relativePath string) (string, error) {
	for _, dir := range x.dirs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		full, err := resolve(filepath.Join(dir, x.appName), relativePath)
		if err != nil {
			return "", err
		}
		data, err := afero.ReadFile(x.fs, full)
		if err == nil {
			x.logger.WithField("file", full).Debug("reading catalog document")
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read %s: %w", full, err)
		}
	}
	return "", &NotFoundError{Path: relativePath, Location: x.String()}
}

func (x *XDGLoader) String() string {
	return fmt.Sprintf("xdg://%s [%s]", x.appName, strings.Join(x.dirs, ":"))
}
