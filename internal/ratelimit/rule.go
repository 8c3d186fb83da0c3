// Package ratelimit decides whether a client may make another request.
// Counters live in redis when it is reachable and in process memory
// otherwise.
package ratelimit

import (
	"context"
	"time"
)

// Client groups. Each route applies the rule of the caller's group.
const (
	GroupShorten  = "shorten"
	GroupRedirect = "redirect"
	GroupAPI      = "api"
	GroupAuth     = "auth"
	GroupAdmin    = "admin"
)

// Rule allows Limit requests per Period. A zero Limit means unlimited.
type Rule struct {
	Group  string
	Limit  int
	Period time.Duration
}

// Unlimited reports whether the rule never blocks.
func (r Rule) Unlimited() bool {
	return r.Limit <= 0 || r.Period <= 0
}

// PerMinute builds a rule of n requests per minute.
func PerMinute(group string, n int) Rule {
	return Rule{Group: group, Limit: n, Period: time.Minute}
}

// PerSecond builds a rule of n requests per second.
func PerSecond(group string, n int) Rule {
	return Rule{Group: group, Limit: n, Period: time.Second}
}

// Unlimited builds a rule that never blocks.
func Unlimited(group string) Rule {
	return Rule{Group: group}
}

// Rules holds one rule per group.
type Rules []Rule

// For returns the rule of group. A group without a rule is unlimited.
func (rs Rules) For(group string) Rule {
	for _, r := range rs {
		if r.Group == group {
			return r
		}
	}
	return Unlimited(group)
}

// Decision is the outcome of one check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
	Backend    string
}

// Backend counts requests per key.
type Backend interface {
	Allow(ctx context.Context, key string, rule Rule) (Decision, error)
}

// RemoteBackend is a backend that can become unreachable.
type RemoteBackend interface {
	Backend
	Ping(ctx context.Context) error
}

func key(group, identity string) string {
	return group + ":" + identity
}
