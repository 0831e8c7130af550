package catalog

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Store.
type Option func(*storeConfig)

type storeConfig struct {
	logger  *logrus.Entry
	checker InclusionChecker
	now     func() time.Time
}

func defaultStoreConfig() *storeConfig {
	return &storeConfig{
		logger:  logrus.NewEntry(logrus.StandardLogger()).WithField("component", "catalog"),
		checker: nothingCompiledIn{},
		now:     time.Now,
	}
}

// WithLogger sets the logger used for population and dedup messages.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *storeConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInclusionChecker sets the predicate consulted in ReflectionBased mode.
func WithInclusionChecker(checker InclusionChecker) Option {
	return func(c *storeConfig) {
		if checker != nil {
			c.checker = checker
		}
	}
}

// WithClock overrides the time source used for DataVersion.LoadTime.
func WithClock(now func() time.Time) Option {
	return func(c *storeConfig) {
		if now != nil {
			c.now = now
		}
	}
}
