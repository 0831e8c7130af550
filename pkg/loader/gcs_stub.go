//go:build !gcs
// +build !gcs

package loader

import (
	"context"
	"fmt"
)

// NewGCSLoader returns an error when GCS support is not enabled.
func NewGCSLoader(ctx context.Context, config GCSConfig) (Loader, error) {
	return nil, fmt.Errorf("%w: cannot read %s", ErrGCSNotEnabled, config.String())
}
