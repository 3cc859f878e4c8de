// Package ui defines the narrow view of the browser page that the
// portfolio's interactive components are written against. The js/wasm
// build binds these interfaces to the real DOM (package dom); tests bind
// them to in-memory fakes (package uitest).
//
// Lookups that find nothing return a nil interface, never a typed nil.
package ui

import "net/url"

// Event names used with On.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventSubmit  = "submit"
	EventChange  = "change"
)

// Event is the part of a DOM event the components read.
type Event struct {
	// Key is KeyboardEvent.key for keydown events.
	Key string
	// InLink reports whether the event target is an anchor or sits inside one.
	InLink bool
	// PreventDefault cancels the browser's default action. May be nil.
	PreventDefault func()
}

// Element is a single DOM element.
type Element interface {
	Attribute(name string) string
	SetAttribute(name, value string)
	SetInnerHTML(html string)
	SetText(text string)
	SetClassName(name string)
	AddClass(name string)
	ToggleClass(name string, on bool)
	SetDisabled(disabled bool)
	// Query returns the first descendant matching selector, or nil.
	Query(selector string) Element
	On(event string, fn func(Event))
}

// FormElement is a <form>.
type FormElement interface {
	Element
	Values() url.Values
	Action() string
	Method() string
	Reset()
}

// MediaQuery is a window.matchMedia result.
type MediaQuery interface {
	Matches() bool
	OnChange(fn func())
}

// Storage is a string key-value store such as window.localStorage.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Document is the page.
type Document interface {
	// Root is document.documentElement.
	Root() Element
	ByID(id string) Element
	Form(id string) FormElement
	Query(selector string) Element
	// MatchMedia returns nil when the platform has no media query support.
	MatchMedia(query string) MediaQuery
	On(event string, fn func(Event))
}
