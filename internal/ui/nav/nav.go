// Package nav implements the mobile navigation menu toggle.
package nav

import (
	"errors"
	"strconv"

	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/ui"
)

const (
	ToggleSelector = ".nav-toggle"
	MenuID         = "primary-menu"
	// OpenClass marks the menu panel as visible.
	OpenClass = "open"
	EscapeKey = "Escape"
)

var errMissingElements = errors.New("[nav] Missing .nav-toggle or #primary-menu")

// Toggle is the collapsed/expanded state machine. The state lives only in
// the toggle's aria-expanded attribute.
type Toggle struct {
	toggle ui.Element
	menu   ui.Element
}

// New binds a Toggle to the page. It fails when either element is missing.
func New(doc ui.Document) (*Toggle, error) {
	toggle := doc.Query(ToggleSelector)
	menu := doc.ByID(MenuID)
	if toggle == nil || menu == nil {
		return nil, errMissingElements
	}
	return &Toggle{toggle: toggle, menu: menu}, nil
}

// Expanded reports the current state.
func (t *Toggle) Expanded() bool {
	return t.toggle.Attribute("aria-expanded") == "true"
}

// SetExpanded writes the state to both elements.
func (t *Toggle) SetExpanded(expanded bool) {
	t.toggle.SetAttribute("aria-expanded", strconv.FormatBool(expanded))
	t.menu.ToggleClass(OpenClass, expanded)
}

// Bind collapses the menu and attaches the click, Escape and link handlers.
func (t *Toggle) Bind(doc ui.Document) {
	t.SetExpanded(false)

	t.toggle.On(ui.EventClick, func(ui.Event) {
		t.SetExpanded(!t.Expanded())
	})

	doc.On(ui.EventKeyDown, func(e ui.Event) {
		if e.Key == EscapeKey {
			t.SetExpanded(false)
		}
	})

	t.menu.On(ui.EventClick, func(e ui.Event) {
		if e.InLink {
			t.SetExpanded(false)
		}
	})
}

// Mount binds a Toggle, or logs a warning and returns nil when the page has
// no navigation menu.
func Mount(doc ui.Document, log *logging.Logger) *Toggle {
	t, err := New(doc)
	if err != nil {
		log.Warn(nil, err.Error())
		return nil
	}
	t.Bind(doc)
	return t
}
