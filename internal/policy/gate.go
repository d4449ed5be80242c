// Package policy provides command authorization.
package policy

import (
	"fmt"
	"strings"
)

// Decision is the result of an authorization check.
type Decision struct {
	Allow  bool
	Reason string
}

// Gate decides whether an acting identity may invoke a privileged command.
// The allow-list is copied at construction and never mutated afterwards, so a
// Gate is safe for concurrent use without locking.
type Gate struct {
	allowed map[string]struct{}
}

// NewGate creates a gate over the given identities. Blank entries are ignored.
func NewGate(identities []string) *Gate {
	g := &Gate{allowed: make(map[string]struct{}, len(identities))}
	for _, id := range identities {
		if id = strings.TrimSpace(id); id != "" {
			g.allowed[id] = struct{}{}
		}
	}
	return g
}

// IsAllowed reports whether identity is on the allow-list.
func (g *Gate) IsAllowed(identity string) bool {
	if g == nil {
		return false
	}
	_, ok := g.allowed[identity]
	return ok
}

// Evaluate is IsAllowed with a reason attached, for logging.
func (g *Gate) Evaluate(identity string) Decision {
	if g.IsAllowed(identity) {
		return Decision{Allow: true, Reason: "allow_listed"}
	}
	return Decision{Reason: fmt.Sprintf("sender_not_authorized: %s", identity)}
}

// Size returns the number of allow-listed identities.
func (g *Gate) Size() int {
	if g == nil {
		return 0
	}
	return len(g.allowed)
}
