package loader

import "fmt"

// GCSConfig locates catalog documents in a Google Cloud Storage bucket.
// A logical path p is read from object ObjectPrefix+p.
type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsJSON string `yaml:"-"`
}

func (c GCSConfig) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket name is required", ErrInvalidConfig)
	}
	return nil
}

func (c GCSConfig) String() string {
	return fmt.Sprintf("gs://%s/%s", c.Bucket, c.ObjectPrefix)
}
