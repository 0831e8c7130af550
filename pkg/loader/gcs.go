//go:build gcs
// +build gcs

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type gcsLoader struct {
	config GCSConfig
	client *storage.Client
	logger *logrus.Entry
}

// NewGCSLoader creates a Loader reading catalog documents from Google Cloud Storage.
func NewGCSLoader(ctx context.Context, config GCSConfig) (Loader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var clientOpts []option.ClientOption
	if config.CredentialsJSON != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(config.CredentialsJSON)))
	}
	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &gcsLoader{
		config: config,
		client: client,
		logger: logrus.WithField("component", "loader"),
	}, nil
}

func (g *gcsLoader) LoadText(ctx context.Context, relativePath string) (string, error) {
	object := path.Join(g.config.ObjectPrefix, relativePath)
	g.logger.WithField("object", object).Debug("reading catalog document from GCS")

	reader, err := g.client.Bucket(g.config.Bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", &NotFoundError{Path: relativePath, Location: g.String()}
		}
		return "", fmt.Errorf("failed to create reader for gs://%s/%s: %w", g.config.Bucket, object, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			g.logger.WithError(closeErr).Warn("failed to close reader")
		}
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read gs://%s/%s: %w", g.config.Bucket, object, err)
	}
	return string(data), nil
}

func (g *gcsLoader) String() string {
	return g.config.String()
}

func (g *gcsLoader) Close() error {
	return g.client.Close()
}
