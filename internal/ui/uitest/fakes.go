// Package uitest provides in-memory implementations of the ui interfaces.
package uitest

import (
	"net/url"
	"slices"
	"strings"

	"github.com/moeezmir/portfolio/internal/ui"
)

// Element is a fake ui.Element.
type Element struct {
	Attrs     map[string]string
	InnerHTML string
	Text      string
	Disabled  bool
	Children  map[string]*Element

	classes  []string
	handlers map[string][]func(ui.Event)
}

// NewElement returns an empty element.
func NewElement() *Element {
	return &Element{
		Attrs:    map[string]string{},
		Children: map[string]*Element{},
		handlers: map[string][]func(ui.Event){},
	}
}

func (e *Element) Attribute(name string) string    { return e.Attrs[name] }
func (e *Element) SetAttribute(name, value string) { e.Attrs[name] = value }
func (e *Element) SetInnerHTML(html string)        { e.InnerHTML = html }
func (e *Element) SetText(text string)             { e.Text = text }
func (e *Element) SetDisabled(disabled bool)       { e.Disabled = disabled }
func (e *Element) On(event string, fn func(ui.Event)) {
	e.handlers[event] = append(e.handlers[event], fn)
}

func (e *Element) SetClassName(name string) {
	e.classes = strings.Fields(name)
}

func (e *Element) AddClass(name string) {
	if !e.HasClass(name) {
		e.classes = append(e.classes, name)
	}
}

func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// ClassName returns the class attribute.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

func (e *Element) Query(selector string) ui.Element {
	if c, ok := e.Children[selector]; ok {
		return c
	}
	return nil
}

// Listeners returns how many handlers are bound for event.
func (e *Element) Listeners(event string) int {
	return len(e.handlers[event])
}

// Fire dispatches ev to every handler bound for event. A nil
// PreventDefault is filled in and its call recorded in the returned bool.
func (e *Element) Fire(event string, ev ui.Event) (prevented bool) {
	if ev.PreventDefault == nil {
		ev.PreventDefault = func() { prevented = true }
	}
	for _, fn := range e.handlers[event] {
		fn(ev)
	}
	return prevented
}

// Form is a fake ui.FormElement.
type Form struct {
	*Element
	Fields     url.Values
	ActionURL  string
	MethodName string
	Resets     int
}

// NewForm returns a form posting to action.
func NewForm(action string) *Form {
	return &Form{Element: NewElement(), Fields: url.Values{}, ActionURL: action}
}

func (f *Form) Values() url.Values { return f.Fields }
func (f *Form) Action() string     { return f.ActionURL }
func (f *Form) Method() string     { return f.MethodName }

func (f *Form) Reset() {
	f.Resets++
	f.Fields = url.Values{}
}

// MediaQuery is a fake ui.MediaQuery.
type MediaQuery struct {
	matches   bool
	listeners []func()
}

func NewMediaQuery(matches bool) *MediaQuery {
	return &MediaQuery{matches: matches}
}

func (m *MediaQuery) Matches() bool      { return m.matches }
func (m *MediaQuery) OnChange(fn func()) { m.listeners = append(m.listeners, fn) }

// Set changes the match state and notifies listeners.
func (m *MediaQuery) Set(matches bool) {
	m.matches = matches
	for _, fn := range m.listeners {
		fn()
	}
}

// Storage is a fake ui.Storage. GetErr and SetErr simulate unavailable
// storage.
type Storage struct {
	Data   map[string]string
	GetErr error
	SetErr error
}

func NewStorage() *Storage {
	return &Storage{Data: map[string]string{}}
}

func (s *Storage) Get(key string) (string, bool, error) {
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.Data[key]
	return v, ok, nil
}

func (s *Storage) Set(key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Data[key] = value
	return nil
}

// Document is a fake ui.Document. Leave RootElement or Media nil to
// simulate their absence.
type Document struct {
	RootElement *Element
	IDs         map[string]*Element
	Forms       map[string]*Form
	Selectors   map[string]*Element
	Media       *MediaQuery

	*Element
}

func NewDocument() *Document {
	return &Document{
		RootElement: NewElement(),
		IDs:         map[string]*Element{},
		Forms:       map[string]*Form{},
		Selectors:   map[string]*Element{},
		Element:     NewElement(),
	}
}

func (d *Document) Root() ui.Element {
	if d.RootElement == nil {
		return nil
	}
	return d.RootElement
}

func (d *Document) ByID(id string) ui.Element {
	if el, ok := d.IDs[id]; ok {
		return el
	}
	return nil
}

func (d *Document) Form(id string) ui.FormElement {
	if f, ok := d.Forms[id]; ok {
		return f
	}
	return nil
}

func (d *Document) Query(selector string) ui.Element {
	if el, ok := d.Selectors[selector]; ok {
		return el
	}
	return nil
}

func (d *Document) MatchMedia(query string) ui.MediaQuery {
	if d.Media == nil {
		return nil
	}
	return d.Media
}
