package interaction

import (
	"context"
	"sync"
)

// ButtonStyle is the visual style of a panel button.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// CashPanelID is the custom id of the cash-out button. It must stay stable
// across builds: buttons on messages posted by earlier processes carry it.
const CashPanelID = "cash_button"

// Panel is a persistent single-button component. It holds no reference to
// any message; every message that rendered it shares the same handler.
type Panel struct {
	CustomID string
	Label    string
	Style    ButtonStyle
}

// CashPanel returns the cash-out button.
func CashPanel() Panel {
	return Panel{CustomID: CashPanelID, Label: "換金する", Style: ButtonSuccess}
}

// PanelHandler runs when a panel button is activated.
type PanelHandler func(ctx context.Context, in *Interaction, reply Responder) error

type panelEntry struct {
	panel   Panel
	handler PanelHandler
}

// PanelRegistry maps stable custom ids to panel handlers. Panels never
// expire; an entry lives for the whole process.
type PanelRegistry struct {
	mu      sync.RWMutex
	entries map[string]panelEntry
}

// NewPanelRegistry creates an empty registry.
func NewPanelRegistry() *PanelRegistry {
	return &PanelRegistry{entries: make(map[string]panelEntry)}
}

// Register adds p unless its custom id is already registered. It reports
// whether this call added the entry; repeat calls are no-ops.
func (r *PanelRegistry) Register(p Panel, h PanelHandler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[p.CustomID]; ok {
		return false
	}
	r.entries[p.CustomID] = panelEntry{panel: p, handler: h}
	return true
}

// Lookup returns the panel and handler registered under customID.
func (r *PanelRegistry) Lookup(customID string) (Panel, PanelHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[customID]
	return e.panel, e.handler, ok
}

// Len returns the number of registered panels.
func (r *PanelRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
