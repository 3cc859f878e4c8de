//go:build js && wasm

// Command portfolio-wasm is the browser client. It binds the theme
// toggle, navigation menu, contact form and typing hero to the page and
// then blocks so the callbacks stay alive.
//
//	GOOS=js GOARCH=wasm go build -o public/app.wasm ./cmd/portfolio-wasm
package main

import (
	"context"
	"os"
	"time"

	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/ui"
	"github.com/moeezmir/portfolio/internal/ui/contact"
	"github.com/moeezmir/portfolio/internal/ui/dom"
	"github.com/moeezmir/portfolio/internal/ui/nav"
	"github.com/moeezmir/portfolio/internal/ui/theme"
	"github.com/moeezmir/portfolio/internal/ui/typing"
)

// requestTimeout bounds a contact submission.
const requestTimeout = 30 * time.Second

func main() {
	log, err := logging.New(logging.Options{Level: "info", Writer: os.Stderr})
	if err != nil {
		log = logging.Nop()
	}

	doc := dom.NewDocument()
	ctx := context.Background()

	theme.Mount(doc, dom.NewLocalStorage(), log)
	nav.Mount(doc, log)
	contact.Mount(ctx, doc, contact.NewHTTPClient(requestTimeout), log)
	typing.Mount(doc, phrases(doc, log), typing.TimerScheduler{}, log)

	select {}
}

// phrases reads the hero phrases from the typing element, falling back to
// the built-in list.
func phrases(doc ui.Document, log *logging.Logger) []string {
	el := doc.Query(typing.Selector)
	if el == nil {
		return typing.DefaultPhrases
	}
	list, err := typing.ParsePhrases(el.Attribute(typing.PhrasesAttr))
	if err != nil {
		log.Warn(err, "[typing] ignoring invalid data-phrases")
	}
	return list
}
