// Package typing implements the hero section's type-and-delete animation.
package typing

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/ui"
)

// Selector locates the element whose text is animated.
const Selector = ".typing"

// Tick delays.
const (
	TypeDelay   = 100 * time.Millisecond
	DeleteDelay = 50 * time.Millisecond
	HoldDelay   = 2000 * time.Millisecond
	NextDelay   = 500 * time.Millisecond
)

// DefaultPhrases are shown when the page supplies none.
var DefaultPhrases = []string{
	"Full Stack Developer",
	"Programmer",
	"Problem Solver",
	"Freelancer",
}

// PhrasesAttr is the attribute the page lists its phrases in, as a JSON
// array of strings.
const PhrasesAttr = "data-phrases"

// ParsePhrases decodes a PhrasesAttr value. An empty value gives
// DefaultPhrases; malformed JSON or an empty list gives DefaultPhrases and
// an error.
func ParsePhrases(raw string) ([]string, error) {
	if raw == "" {
		return DefaultPhrases, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return DefaultPhrases, err
	}
	if len(list) == 0 {
		return DefaultPhrases, errNoPhrases
	}
	return list, nil
}

var (
	errMissingElement = errors.New("[typing] Missing .typing element")
	errNoPhrases      = errors.New("[typing] No phrases to animate")
)

// State is the animation cursor. Char counts runes of the current phrase
// that are on screen.
type State struct {
	Phrase   int
	Char     int
	Deleting bool
}

// Step advances s by one tick over phrases, returning the next state, the
// text to display and the delay before the following tick. phrases must
// be non-empty.
func Step(s State, phrases []string) (State, string, time.Duration) {
	current := []rune(phrases[s.Phrase%len(phrases)])

	if s.Deleting {
		s.Char--
		if s.Char < 0 {
			s.Char = 0
		}
		text := string(current[:s.Char])
		if s.Char == 0 {
			s.Deleting = false
			s.Phrase = (s.Phrase + 1) % len(phrases)
			return s, text, NextDelay
		}
		return s, text, DeleteDelay
	}

	if s.Char < len(current) {
		s.Char++
	}
	text := string(current[:s.Char])
	if s.Char == len(current) {
		s.Deleting = true
		return s, text, HoldDelay
	}
	return s, text, TypeDelay
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler schedules on time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Animator drives Step against an element. It runs until the page goes
// away; there is no way to stop it.
type Animator struct {
	el      ui.Element
	phrases []string
	sched   Scheduler
	state   State
}

// New returns an Animator over phrases. It fails when el is nil or there
// is nothing to type.
func New(el ui.Element, phrases []string, sched Scheduler) (*Animator, error) {
	if el == nil {
		return nil, errMissingElement
	}
	if len(phrases) == 0 {
		return nil, errNoPhrases
	}
	for _, p := range phrases {
		if p == "" {
			return nil, errNoPhrases
		}
	}
	return &Animator{el: el, phrases: phrases, sched: sched}, nil
}

// Tick performs one step and schedules the next.
func (a *Animator) Tick() {
	next, text, delay := Step(a.state, a.phrases)
	a.state = next
	a.el.SetText(text)
	a.sched.AfterFunc(delay, a.Tick)
}

// Mount starts the animation on the page's .typing element. When the
// element is absent it logs a warning and does nothing.
func Mount(doc ui.Document, phrases []string, sched Scheduler, log *logging.Logger) *Animator {
	a, err := New(doc.Query(Selector), phrases, sched)
	if err != nil {
		log.Warn(nil, err.Error())
		return nil
	}
	a.Tick()
	return a
}
