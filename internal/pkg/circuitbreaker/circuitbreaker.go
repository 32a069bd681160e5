// Package circuitbreaker stops calling an optional dependency after
// repeated failures and probes it again once a cool-down has passed.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Do while the breaker is open
var ErrOpen = errors.New("circuit breaker is open")

// State represents the breaker state
type State int

const (
	// Closed lets every call through
	Closed State = iota
	// Open rejects calls until the cool-down has passed
	Open
	// HalfOpen lets a single probe call through
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds breaker configuration
type Config struct {
	// Name identifies the protected dependency in logs
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker
	MaxFailures int
	// CoolDown is how long the breaker stays open before a probe
	CoolDown time.Duration
	// OnStateChange is called, without the lock held, after every transition
	OnStateChange func(name string, from, to State)
}

// Breaker is safe for concurrent use
type Breaker struct {
	config Config
	now    func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a closed breaker
func New(config Config) *Breaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.CoolDown <= 0 {
		config.CoolDown = 30 * time.Second
	}
	return &Breaker{config: config, now: time.Now}
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Do runs fn unless the breaker is open, and records its outcome
func (b *Breaker) Do(fn func() error) error {
	if !b.allow() {
		return ErrOpen
	}
	err := fn()
	b.record(err)
	return err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	var from, to State
	changed := false
	defer func() {
		b.mu.Unlock()
		if changed {
			b.notify(from, to)
		}
	}()

	switch b.state {
	case Open:
		if b.now().Sub(b.openedAt) < b.config.CoolDown {
			return false
		}
		from, to, changed = Open, HalfOpen, true
		b.state = HalfOpen
		b.probing = true
		return true
	case HalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	}
	return true
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	from := b.state

	if err == nil {
		b.failures = 0
		b.state = Closed
	} else {
		b.failures++
		if b.state == HalfOpen || b.failures >= b.config.MaxFailures {
			b.state = Open
			b.openedAt = b.now()
		}
	}
	b.probing = false
	to := b.state
	b.mu.Unlock()

	if from != to {
		b.notify(from, to)
	}
}

func (b *Breaker) notify(from, to State) {
	if b.config.OnStateChange != nil {
		b.config.OnStateChange(b.config.Name, from, to)
	}
}
