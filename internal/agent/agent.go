package agent

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
)

// Default bounds of the simulated thinking delay.
const (
	DefaultMinDelay = 800 * time.Millisecond
	DefaultMaxDelay = 1600 * time.Millisecond
)

// Agent is the chat entry point. It wraps a Matcher with a random thinking
// delay. An Agent has no mutable state and may serve concurrent turns.
type Agent struct {
	matcher *Matcher
	delay   func() time.Duration
	pick    func(n int) int
}

// Option configures an Agent.
type Option func(*Agent)

// WithMatcher replaces the built-in playbooks.
func WithMatcher(m *Matcher) Option {
	return func(a *Agent) { a.matcher = m }
}

// WithDelayRange draws the thinking delay uniformly from [lo, hi].
func WithDelayRange(lo, hi time.Duration) Option {
	return func(a *Agent) { a.delay = uniformDelay(lo, hi) }
}

// WithDelay sets a fixed delay source. Tests pass a zero function.
func WithDelay(fn func() time.Duration) Option {
	return func(a *Agent) { a.delay = fn }
}

// WithPicker sets the index chooser used by Greet.
func WithPicker(fn func(n int) int) Option {
	return func(a *Agent) { a.pick = fn }
}

// New creates an Agent with the default playbooks and an 800-1600ms delay.
func New(opts ...Option) *Agent {
	a := &Agent{
		matcher: DefaultMatcher(),
		delay:   uniformDelay(DefaultMinDelay, DefaultMaxDelay),
		pick:    rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Matcher exposes the underlying matcher.
func (a *Agent) Matcher() *Matcher { return a.matcher }

// Ask waits for the thinking delay and then answers message. It returns
// ctx.Err() if ctx ends before the delay elapses.
func (a *Agent) Ask(ctx context.Context, message string, role domain.Role, snap domain.Snapshot, cctx ChatContext) (Reply, error) {
	if d := a.delay(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}
	return a.matcher.Respond(message, role, &snap, cctx), nil
}

// Greet returns a random greeting of role.
func (a *Agent) Greet(role domain.Role) string {
	greetings := a.matcher.Playbook(role).Greetings
	if len(greetings) == 0 {
		return "Hi! How can I help?"
	}
	return greetings[a.pick(len(greetings))]
}

func uniformDelay(lo, hi time.Duration) func() time.Duration {
	if hi <= lo {
		return func() time.Duration { return lo }
	}
	return func() time.Duration {
		return lo + rand.N(hi-lo+1)
	}
}
