package typing

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/ui/uitest"
)

// manualScheduler queues callbacks until the test runs them.
type manualScheduler struct {
	delays  []time.Duration
	pending []func()
}

func (m *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	m.delays = append(m.delays, d)
	m.pending = append(m.pending, fn)
}

func (m *manualScheduler) runNext(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, m.pending)
	fn := m.pending[0]
	m.pending = m.pending[1:]
	fn()
}

func TestStepTypesThenDeletes(t *testing.T) {
	phrases := []string{"Go", "Hi"}
	s := State{}

	var texts []string
	var delays []time.Duration
	for i := 0; i < 8; i++ {
		var text string
		var d time.Duration
		s, text, d = Step(s, phrases)
		texts = append(texts, text)
		delays = append(delays, d)
	}

	assert.Equal(t, []string{"G", "Go", "G", "", "H", "Hi", "H", ""}, texts)
	assert.Equal(t, []time.Duration{
		TypeDelay, HoldDelay, DeleteDelay, NextDelay,
		TypeDelay, HoldDelay, DeleteDelay, NextDelay,
	}, delays)
	assert.Equal(t, State{Phrase: 0}, s, "wraps to the first phrase")
}

func TestStepReachesFullPhrase(t *testing.T) {
	phrases := DefaultPhrases
	s := State{}
	var text string
	for i := 0; i < len(phrases[0]); i++ {
		s, text, _ = Step(s, phrases)
	}
	assert.Equal(t, phrases[0], text)
	assert.True(t, s.Deleting)

	for i := 0; i < len(phrases[0]); i++ {
		s, text, _ = Step(s, phrases)
	}
	assert.Empty(t, text)
	assert.Equal(t, 1, s.Phrase)
	assert.False(t, s.Deleting)
}

func TestStepPhraseIndexModulo(t *testing.T) {
	phrases := []string{"a", "b", "c"}
	s := State{}
	for round := 1; round <= 7; round++ {
		s, _, _ = Step(s, phrases) // type
		s, _, _ = Step(s, phrases) // delete
		assert.Equal(t, round%len(phrases), s.Phrase)
	}
}

func TestStepCountsRunes(t *testing.T) {
	s, text, _ := Step(State{}, []string{"héllo"})
	s, text, _ = Step(s, []string{"héllo"})
	assert.Equal(t, "hé", text)
	assert.Equal(t, 2, s.Char)
}

func TestAnimatorSchedulesItself(t *testing.T) {
	doc := uitest.NewDocument()
	el := uitest.NewElement()
	doc.Selectors[Selector] = el
	sched := &manualScheduler{}

	a := Mount(doc, []string{"Dev"}, sched, logging.Nop())
	require.NotNil(t, a)
	assert.Equal(t, "D", el.Text)

	sched.runNext(t)
	sched.runNext(t)
	assert.Equal(t, "Dev", el.Text)

	sched.runNext(t)
	sched.runNext(t)
	sched.runNext(t)
	assert.Equal(t, "", el.Text)

	sched.runNext(t)
	assert.Equal(t, "D", el.Text, "starts over")
	assert.Equal(t, []time.Duration{
		TypeDelay, TypeDelay, HoldDelay, DeleteDelay, DeleteDelay, NextDelay, TypeDelay,
	}, sched.delays)
}

func TestMountWithoutElementIsNoop(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Writer: &buf})
	require.NoError(t, err)

	sched := &manualScheduler{}
	assert.Nil(t, Mount(uitest.NewDocument(), DefaultPhrases, sched, log))
	assert.Empty(t, sched.pending)
	assert.Contains(t, buf.String(), "[typing] Missing .typing element")
}

func TestNewRejectsEmptyPhrases(t *testing.T) {
	_, err := New(uitest.NewElement(), nil, TimerScheduler{})
	assert.Error(t, err)
	_, err = New(uitest.NewElement(), []string{"ok", ""}, TimerScheduler{})
	assert.Error(t, err)
}

func TestParsePhrases(t *testing.T) {
	list, err := ParsePhrases(`["Gopher","Writer"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gopher", "Writer"}, list)

	list, err = ParsePhrases("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPhrases, list)

	list, err = ParsePhrases("not json")
	assert.Error(t, err)
	assert.Equal(t, DefaultPhrases, list)

	list, err = ParsePhrases("[]")
	assert.Error(t, err)
	assert.Equal(t, DefaultPhrases, list)
}
