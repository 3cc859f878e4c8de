//go:build js && wasm

// Package dom binds the ui interfaces to the browser DOM through syscall/js.
package dom

import (
	"fmt"
	"net/url"
	"strings"
	"syscall/js"

	"github.com/moeezmir/portfolio/internal/ui"
)

// Document is the browser's window.document.
type Document struct {
	window js.Value
	doc    js.Value
}

// NewDocument returns the global document.
func NewDocument() *Document {
	w := js.Global()
	return &Document{window: w, doc: w.Get("document")}
}

func (d *Document) Root() ui.Element {
	return wrap(d.doc.Get("documentElement"))
}

func (d *Document) ByID(id string) ui.Element {
	return wrap(d.doc.Call("getElementById", id))
}

func (d *Document) Form(id string) ui.FormElement {
	v := d.doc.Call("getElementById", id)
	if !present(v) || !strings.EqualFold(v.Get("tagName").String(), "form") {
		return nil
	}
	return &Form{Element: Element{v: v}}
}

func (d *Document) Query(selector string) ui.Element {
	return wrap(d.doc.Call("querySelector", selector))
}

func (d *Document) MatchMedia(query string) ui.MediaQuery {
	if d.window.Get("matchMedia").Type() != js.TypeFunction {
		return nil
	}
	mq := d.window.Call("matchMedia", query)
	if !present(mq) {
		return nil
	}
	return &MediaQuery{v: mq}
}

func (d *Document) On(event string, fn func(ui.Event)) {
	listen(d.doc, event, fn)
}

// Element wraps one DOM element.
type Element struct {
	v js.Value
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

// wrap returns nil for null or undefined so callers can compare the
// interface to nil.
func wrap(v js.Value) ui.Element {
	if !present(v) {
		return nil
	}
	return &Element{v: v}
}

func (e *Element) Attribute(name string) string {
	v := e.v.Call("getAttribute", name)
	if !present(v) {
		return ""
	}
	return v.String()
}

func (e *Element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }
func (e *Element) SetInnerHTML(html string)        { e.v.Set("innerHTML", html) }
func (e *Element) SetText(text string)             { e.v.Set("textContent", text) }
func (e *Element) SetClassName(name string)        { e.v.Set("className", name) }
func (e *Element) AddClass(name string)            { e.v.Get("classList").Call("add", name) }
func (e *Element) SetDisabled(disabled bool)       { e.v.Set("disabled", disabled) }

func (e *Element) ToggleClass(name string, on bool) {
	e.v.Get("classList").Call("toggle", name, on)
}

func (e *Element) Query(selector string) ui.Element {
	return wrap(e.v.Call("querySelector", selector))
}

func (e *Element) On(event string, fn func(ui.Event)) {
	listen(e.v, event, fn)
}

// listen registers fn for the lifetime of the page; the js.Func is never
// released.
func listen(target js.Value, event string, fn func(ui.Event)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			fn(ui.Event{})
			return nil
		}
		fn(toEvent(args[0]))
		return nil
	})
	target.Call("addEventListener", event, cb)
}

func toEvent(ev js.Value) ui.Event {
	e := ui.Event{
		PreventDefault: func() { ev.Call("preventDefault") },
	}
	if k := ev.Get("key"); k.Type() == js.TypeString {
		e.Key = k.String()
	}
	if t := ev.Get("target"); present(t) && t.Get("closest").Type() == js.TypeFunction {
		e.InLink = present(t.Call("closest", "a"))
	}
	return e
}

// Form wraps a <form> element.
type Form struct {
	Element
}

// Values collects the successful controls the way FormData does: named,
// enabled, not buttons, and checkboxes or radios only when checked.
func (f *Form) Values() url.Values {
	values := url.Values{}
	elements := f.v.Get("elements")
	for i := 0; i < elements.Length(); i++ {
		el := elements.Index(i)
		name := el.Get("name").String()
		if name == "" || el.Get("disabled").Truthy() {
			continue
		}
		switch strings.ToLower(el.Get("type").String()) {
		case "submit", "button", "reset", "image", "file":
			continue
		case "checkbox", "radio":
			if !el.Get("checked").Truthy() {
				continue
			}
		}
		values.Add(name, el.Get("value").String())
	}
	return values
}

func (f *Form) Action() string { return f.v.Get("action").String() }
func (f *Form) Method() string { return f.v.Get("method").String() }
func (f *Form) Reset()         { f.v.Call("reset") }

// MediaQuery wraps a MediaQueryList.
type MediaQuery struct {
	v js.Value
}

func (m *MediaQuery) Matches() bool { return m.v.Get("matches").Bool() }

// OnChange uses addEventListener where available and the older
// addListener otherwise.
func (m *MediaQuery) OnChange(fn func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	if m.v.Get("addEventListener").Type() == js.TypeFunction {
		m.v.Call("addEventListener", "change", cb)
		return
	}
	if m.v.Get("addListener").Type() == js.TypeFunction {
		m.v.Call("addListener", cb)
	}
}

// LocalStorage wraps window.localStorage. Browsers throw from it when
// storage is disabled or full; those exceptions come back as errors.
type LocalStorage struct {
	v js.Value
}

// NewLocalStorage returns nil when the page has no usable localStorage.
func NewLocalStorage() ui.Storage {
	var v js.Value
	if err := catch(func() { v = js.Global().Get("localStorage") }); err != nil || !present(v) {
		return nil
	}
	return &LocalStorage{v: v}
}

func (s *LocalStorage) Get(key string) (value string, ok bool, err error) {
	err = catch(func() {
		r := s.v.Call("getItem", key)
		if present(r) {
			value, ok = r.String(), true
		}
	})
	return value, ok, err
}

func (s *LocalStorage) Set(key, value string) error {
	return catch(func() { s.v.Call("setItem", key, value) })
}

// catch converts a JavaScript exception raised inside fn into an error.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

var (
	_ ui.Document    = (*Document)(nil)
	_ ui.FormElement = (*Form)(nil)
	_ ui.MediaQuery  = (*MediaQuery)(nil)
	_ ui.Storage     = (*LocalStorage)(nil)
)
