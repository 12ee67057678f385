package retry

import (
	"context"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsbuild/internal/config"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, config.RetryBackoffLinear, p.Mode)
	assert.Equal(t, time.Second, p.Initial)
	assert.Equal(t, 30*time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial, "initial is clamped to max")
	assert.Equal(t, config.RetryBackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	p = NewPolicy("bogus", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestDelayModes(t *testing.T) {
	fixed := NewPolicy(config.RetryBackoffFixed, 100*time.Millisecond, 500*time.Millisecond, 3)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, 100*time.Millisecond, fixed.Delay(i))
	}

	linear := NewPolicy(config.RetryBackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5)
	assert.Equal(t, 100*time.Millisecond, linear.Delay(1))
	assert.Equal(t, 200*time.Millisecond, linear.Delay(2))
	assert.Equal(t, 250*time.Millisecond, linear.Delay(3))

	exp := NewPolicy(config.RetryBackoffExponential, 100*time.Millisecond, time.Second, 5)
	assert.Equal(t, 100*time.Millisecond, exp.Delay(1))
	assert.Equal(t, 400*time.Millisecond, exp.Delay(3))
	assert.Equal(t, time.Second, exp.Delay(5))
	assert.Zero(t, exp.Delay(0))
}

func TestFromConfig(t *testing.T) {
	retries := 4
	p := FromConfig(config.SyncConfig{Retries: &retries, Backoff: config.RetryBackoffExponential, InitialDelay: "2s", MaxDelay: "1m"})
	assert.Equal(t, Policy{Mode: config.RetryBackoffExponential, Initial: 2 * time.Second, Max: time.Minute, MaxRetries: 4}, p)
}

func fastPolicy(retries int) Policy {
	return NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, retries)
}

func TestDo(t *testing.T) {
	transient := errors.GitError("connection reset").Retryable().Build()
	permanent := errors.GitError("repository not found").UserAction().Build()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Do(t.Context(), fastPolicy(2), "fetch", func(context.Context) error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up when retries are exhausted", func(t *testing.T) {
		calls := 0
		err := Do(t.Context(), fastPolicy(1), "fetch", func(context.Context) error {
			calls++
			return transient
		})
		require.ErrorIs(t, err, transient)
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry permanent or unclassified errors", func(t *testing.T) {
		for _, fail := range []error{permanent, stdErrors.New("boom")} {
			calls := 0
			err := Do(t.Context(), fastPolicy(3), "clone", func(context.Context) error {
				calls++
				return fail
			})
			require.Error(t, err)
			assert.Equal(t, 1, calls)
		}
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0
		err := Do(ctx, NewPolicy(config.RetryBackoffFixed, time.Hour, time.Hour, 3), "fetch", func(context.Context) error {
			calls++
			cancel()
			return transient
		})
		require.ErrorIs(t, err, transient)
		assert.Equal(t, 1, calls)
	})
}
