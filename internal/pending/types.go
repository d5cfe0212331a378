package pending

import (
	"time"
)

// Pending represents a typed in-flight request.
// T holds caller-specific payload (e.g. a completion channel and PKCE verifier).
type Pending[T any] struct {
	ID   string
	Kind string // e.g. "silent", "interactive"

	CreatedAt time.Time
	ExpiresAt time.Time

	Data T
}

// Expired reports whether p has an expiry that is not after now.
func (p *Pending[T]) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}

// Spec carries inputs to create a Pending.
type Spec[T any] struct {
	Kind string
	TTL  time.Duration // optional; zero means no expiry
	Data T
}
