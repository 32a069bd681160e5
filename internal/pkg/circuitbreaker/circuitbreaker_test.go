package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errDown = errors.New("down")

func TestBreaker(t *testing.T) {
	t.Run("opens after consecutive failures", func(t *testing.T) {
		b := New(Config{Name: "redis", MaxFailures: 2, CoolDown: time.Minute})

		assert.Equal(t, errDown, b.Do(func() error { return errDown }))
		assert.Equal(t, Closed, b.State())
		assert.Equal(t, errDown, b.Do(func() error { return errDown }))
		assert.Equal(t, Open, b.State())

		called := false
		err := b.Do(func() error { called = true; return nil })
		assert.ErrorIs(t, err, ErrOpen)
		assert.False(t, called)
	})

	t.Run("a success resets the failure count", func(t *testing.T) {
		b := New(Config{MaxFailures: 2})

		_ = b.Do(func() error { return errDown })
		_ = b.Do(func() error { return nil })
		_ = b.Do(func() error { return errDown })
		assert.Equal(t, Closed, b.State())
	})

	t.Run("probes after the cool-down", func(t *testing.T) {
		now := time.Now()
		b := New(Config{MaxFailures: 1, CoolDown: time.Second})
		b.now = func() time.Time { return now }

		_ = b.Do(func() error { return errDown })
		assert.Equal(t, Open, b.State())

		now = now.Add(2 * time.Second)
		assert.NoError(t, b.Do(func() error { return nil }))
		assert.Equal(t, Closed, b.State())
	})

	t.Run("failed probe reopens", func(t *testing.T) {
		now := time.Now()
		var transitions []string
		b := New(Config{
			Name:        "redis",
			MaxFailures: 1,
			CoolDown:    time.Second,
			OnStateChange: func(name string, from, to State) {
				transitions = append(transitions, from.String()+"->"+to.String())
			},
		})
		b.now = func() time.Time { return now }

		_ = b.Do(func() error { return errDown })
		now = now.Add(2 * time.Second)
		_ = b.Do(func() error { return errDown })

		assert.Equal(t, Open, b.State())
		assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->open"}, transitions)
	})
}
