package addin

import (
	"fmt"
	"sort"
	"sync"
)

// Host is the application surface commands are installed into.
type Host interface {
	AddButton(def Definition) error
	RemoveButton(def Definition) error
}

// Toolbar is an in-memory Host keyed by panel.
type Toolbar struct {
	mu     sync.Mutex
	panels map[string]map[string]Definition
}

// NewToolbar creates an empty toolbar.
func NewToolbar() *Toolbar {
	return &Toolbar{panels: make(map[string]map[string]Definition)}
}

// AddButton places def on its panel. Adding an ID twice to the same panel
// fails.
func (t *Toolbar) AddButton(def Definition) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	panel, ok := t.panels[def.PanelID]
	if !ok {
		panel = make(map[string]Definition)
		t.panels[def.PanelID] = panel
	}
	if _, exists := panel[def.ID]; exists {
		return fmt.Errorf("button %q already on panel %q", def.ID, def.PanelID)
	}
	panel[def.ID] = def
	return nil
}

// RemoveButton takes def off its panel. Removing a missing button is not an
// error.
func (t *Toolbar) RemoveButton(def Definition) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if panel, ok := t.panels[def.PanelID]; ok {
		delete(panel, def.ID)
		if len(panel) == 0 {
			delete(t.panels, def.PanelID)
		}
	}
	return nil
}

// Buttons returns the IDs on a panel in sorted order.
func (t *Toolbar) Buttons(panelID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.panels[panelID]))
	for id := range t.panels[panelID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of buttons across all panels.
func (t *Toolbar) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, panel := range t.panels {
		n += len(panel)
	}
	return n
}
