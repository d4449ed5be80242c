// Package status tracks bot liveness and serves the read-only status page.
package status

import "sync/atomic"

// Report is what the status page renders.
type Report struct {
	Status  string
	Color   string
	BotName string
	Online  bool
}

type snapshot struct {
	online bool
	name   string
}

// Liveness is written only by the transport connection callbacks and read by
// any number of HTTP handlers. Each read sees one consistent snapshot.
type Liveness struct {
	fallback string
	state    atomic.Pointer[snapshot]
}

// NewLiveness starts offline. fallbackName is shown until the platform reports
// the bot's own name.
func NewLiveness(fallbackName string) *Liveness {
	l := &Liveness{fallback: fallbackName}
	l.state.Store(&snapshot{})
	return l
}

// MarkOnline records a completed handshake and the bot's display name.
func (l *Liveness) MarkOnline(displayName string) {
	l.state.Store(&snapshot{online: true, name: displayName})
}

// MarkOffline records a lost connection. The last known name is kept.
func (l *Liveness) MarkOffline() {
	prev := l.state.Load()
	l.state.Store(&snapshot{name: prev.name})
}

// Online reports whether the handshake has completed.
func (l *Liveness) Online() bool {
	return l.state.Load().online
}

// Report returns the current status.
func (l *Liveness) Report() Report {
	s := l.state.Load()
	name := s.name
	if name == "" {
		name = l.fallback
	}
	if s.online {
		return Report{Status: "Bot is online", Color: "green", BotName: name, Online: true}
	}
	return Report{Status: "Bot is offline", Color: "red", BotName: name}
}
