// Package theme implements the light/dark/auto appearance switch.
package theme

import (
	"fmt"
	"strconv"

	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/ui"
)

// Preference is the user's persisted appearance choice.
type Preference string

const (
	Auto  Preference = "auto"
	Dark  Preference = "dark"
	Light Preference = "light"
)

const (
	// StorageKey is the localStorage key holding the preference.
	StorageKey = "theme-preference"
	// ToggleID is the id of the theme toggle button.
	ToggleID = "theme-toggle"
	// DarkSchemeQuery is the media query consulted for Auto.
	DarkSchemeQuery = "(prefers-color-scheme: dark)"
)

// Toggle icons, one per rendered state.
const (
	IconAuto = `<i class="fa-solid fa-circle-half-stroke"></i>`
	IconSun  = `<i class="fa-solid fa-sun"></i>`
	IconMoon = `<i class="fa-solid fa-moon"></i>`
)

// ParsePreference maps a stored string to a Preference. Anything
// unrecognised is Auto.
func ParsePreference(s string) Preference {
	switch p := Preference(s); p {
	case Dark, Light:
		return p
	default:
		return Auto
	}
}

// Advance returns the next preference in the cycle auto → dark → light → auto.
func Advance(p Preference) Preference {
	switch p {
	case Auto:
		return Dark
	case Dark:
		return Light
	default:
		return Auto
	}
}

// Controller owns the toggle button and the root element's data-theme.
type Controller struct {
	root    ui.Element
	toggle  ui.Element
	storage ui.Storage
	media   ui.MediaQuery
	log     *logging.Logger

	// current mirrors the stored preference and stands in for it when
	// storage rejects writes.
	current Preference
}

// New builds a Controller from the document. It returns an error when the
// toggle button or root element is missing. storage may be nil when the
// browser exposes none.
func New(doc ui.Document, storage ui.Storage, log *logging.Logger) (*Controller, error) {
	root := doc.Root()
	toggle := doc.ByID(ToggleID)
	if root == nil || toggle == nil {
		return nil, fmt.Errorf("[theme] Missing #%s or documentElement", ToggleID)
	}
	return &Controller{
		root:    root,
		toggle:  toggle,
		storage: storage,
		media:   doc.MatchMedia(DarkSchemeQuery),
		log:     log,
	}, nil
}

// GetPreference returns the stored preference, or Auto if none is stored
// or storage is unavailable.
func (c *Controller) GetPreference() Preference {
	if c.storage == nil {
		c.log.Warn(nil, "[theme] localStorage unavailable")
		return Auto
	}
	v, ok, err := c.storage.Get(StorageKey)
	if err != nil {
		c.log.Warn(err, "[theme] localStorage unavailable")
		return Auto
	}
	if !ok {
		return Auto
	}
	return ParsePreference(v)
}

// SetPreference persists p. Storage failures are logged and dropped.
func (c *Controller) SetPreference(p Preference) {
	if c.storage == nil {
		c.log.Warn(nil, "[theme] localStorage unavailable")
		return
	}
	if err := c.storage.Set(StorageKey, string(p)); err != nil {
		c.log.Warn(err, "[theme] localStorage unavailable")
	}
}

// ComputeIsDark resolves p to the effective appearance.
func (c *Controller) ComputeIsDark(p Preference) bool {
	switch p {
	case Dark:
		return true
	case Light:
		return false
	}
	return c.media != nil && c.media.Matches()
}

// Render writes p to the page.
func (c *Controller) Render(p Preference) {
	c.root.SetAttribute("data-theme", string(p))
	dark := c.ComputeIsDark(p)
	c.toggle.SetAttribute("aria-pressed", strconv.FormatBool(dark))

	switch {
	case p == Auto:
		c.toggle.SetInnerHTML(IconAuto)
	case dark:
		c.toggle.SetInnerHTML(IconSun)
	default:
		c.toggle.SetInnerHTML(IconMoon)
	}
}

// Start renders the stored preference and binds the OS scheme listener and
// the toggle click.
func (c *Controller) Start() {
	c.current = c.GetPreference()
	c.Render(c.current)

	if c.media != nil {
		c.media.OnChange(func() {
			if c.current == Auto {
				c.Render(Auto)
			}
		})
	}

	c.toggle.On(ui.EventClick, func(ui.Event) {
		c.current = Advance(c.current)
		c.SetPreference(c.current)
		c.Render(c.current)
	})
}

// Current returns the preference in effect for this page.
func (c *Controller) Current() Preference {
	return c.current
}

// Mount starts a Controller if the page has the elements for one. A page
// without them gets a warning and nothing else.
func Mount(doc ui.Document, storage ui.Storage, log *logging.Logger) *Controller {
	c, err := New(doc, storage, log)
	if err != nil {
		log.Warn(nil, err.Error())
		return nil
	}
	c.Start()
	return c
}
