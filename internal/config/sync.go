package config

import (
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/normalization"
)

// RetryBackoffMode selects how retry delays grow.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffNormalizer = normalization.NewNormalizer(map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
}, RetryBackoffLinear)

// ParseRetryBackoff parses a backoff mode; empty input yields linear.
func ParseRetryBackoff(raw string) (RetryBackoffMode, error) {
	return retryBackoffNormalizer.Parse(raw)
}

// SyncConfig controls retries of transient git failures during source sync.
type SyncConfig struct {
	Retries      *int             `yaml:"retries,omitempty"`
	Backoff      RetryBackoffMode `yaml:"backoff"`
	InitialDelay string           `yaml:"initial_delay"`
	MaxDelay     string           `yaml:"max_delay"`
}

// RetryCount returns the configured number of retries after the first attempt.
func (s SyncConfig) RetryCount() int {
	if s.Retries == nil {
		return 2
	}
	return *s.Retries
}

// Delays returns the parsed initial and maximum retry delays. Unparseable
// values yield zero, which callers treat as "use the default".
func (s SyncConfig) Delays() (initial, maxDelay time.Duration) {
	initial, _ = time.ParseDuration(s.InitialDelay)
	maxDelay, _ = time.ParseDuration(s.MaxDelay)
	return initial, maxDelay
}
