package contact

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/ui"
	"github.com/moeezmir/portfolio/internal/ui/uitest"
)

// fakeClient records requests and answers with a fixed outcome. During
// the call it captures the submit control's state.
type fakeClient struct {
	outcome  Outcome
	requests []Request

	submit         *uitest.Element
	label          *uitest.Element
	disabledDuring bool
	labelDuring    string
}

func (c *fakeClient) Send(_ context.Context, req Request) Outcome {
	c.requests = append(c.requests, req)
	if c.submit != nil {
		c.disabledDuring = c.submit.Disabled
		c.labelDuring = c.label.Text
	}
	return c.outcome
}

type page struct {
	doc    *uitest.Document
	form   *uitest.Form
	status *uitest.Element
	submit *uitest.Element
	label  *uitest.Element
}

func newPage() *page {
	p := &page{
		doc:    uitest.NewDocument(),
		form:   uitest.NewForm("/contact"),
		status: uitest.NewElement(),
		submit: uitest.NewElement(),
		label:  uitest.NewElement(),
	}
	p.label.Text = LabelIdle
	p.submit.Children[LabelSelector] = p.label
	p.doc.Forms[FormID] = p.form
	p.doc.IDs[StatusID] = p.status
	p.doc.IDs[SubmitID] = p.submit
	return p
}

func (p *page) fill(name, email, subject, message string) {
	p.form.Fields = url.Values{
		"name":    {name},
		"email":   {email},
		"subject": {subject},
		"message": {message},
	}
}

func mountInline(t *testing.T, p *page, client Client) *Submitter {
	t.Helper()
	s, err := New(p.doc, client, logging.Nop())
	require.NoError(t, err)
	s.spawn = func(fn func()) { fn() }
	s.Bind(context.Background())
	return s
}

func TestValidSubmissionSendsOneRequest(t *testing.T) {
	p := newPage()
	client := &fakeClient{outcome: OutcomeSuccess, submit: p.submit, label: p.label}
	mountInline(t, p, client)
	p.fill("Jane", "jane@example.com", "Hello", "Nice site")

	prevented := p.form.Fire(ui.EventSubmit, ui.Event{})

	assert.True(t, prevented)
	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "/contact", req.URL)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "jane@example.com", req.Values.Get("email"))

	assert.True(t, client.disabledDuring)
	assert.Equal(t, LabelBusy, client.labelDuring)
	assert.False(t, p.submit.Disabled)
	assert.Equal(t, LabelIdle, p.label.Text)

	assert.Equal(t, 1, p.form.Resets)
	assert.Equal(t, "form-status success", p.status.ClassName())
	assert.Equal(t, MsgSent, p.status.Text)
}

func TestEmptyFieldSendsNothing(t *testing.T) {
	fields := [][4]string{
		{"", "jane@example.com", "Hello", "Hi"},
		{"Jane", "", "Hello", "Hi"},
		{"Jane", "jane@example.com", "", "Hi"},
		{"Jane", "jane@example.com", "Hello", ""},
		{"Jane", "not-an-email", "Hello", "Hi"},
	}
	for _, f := range fields {
		p := newPage()
		client := &fakeClient{outcome: OutcomeSuccess}
		s := mountInline(t, p, client)
		p.fill(f[0], f[1], f[2], f[3])

		outcome, err := s.Submit(context.Background())

		assert.ErrorIs(t, err, ErrInvalid, "%v", f)
		assert.Equal(t, OutcomeNone, outcome, "%v", f)
		assert.Empty(t, client.requests, "%v", f)
		assert.Equal(t, "form-status error", p.status.ClassName())
		assert.Equal(t, MsgInvalid, p.status.Text)
		assert.False(t, p.submit.Disabled)
		assert.Zero(t, p.form.Resets)
	}
}

func TestOutcomeMessages(t *testing.T) {
	tests := []struct {
		outcome Outcome
		class   string
		msg     string
		resets  int
	}{
		{OutcomeSuccess, "form-status success", MsgSent, 1},
		{OutcomeFailure, "form-status error", MsgFailed, 0},
		{OutcomeNetworkError, "form-status error", MsgNetworkError, 0},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			p := newPage()
			s := mountInline(t, p, &fakeClient{outcome: tt.outcome})
			p.fill("Jane", "jane@example.com", "Hello", "Hi")

			got, err := s.Submit(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.outcome, got)
			assert.Equal(t, tt.class, p.status.ClassName())
			assert.Equal(t, tt.msg, p.status.Text)
			assert.Equal(t, tt.resets, p.form.Resets)
			assert.False(t, p.submit.Disabled)
			assert.Equal(t, LabelIdle, p.label.Text)
		})
	}
}

func TestPriorStatusCleared(t *testing.T) {
	p := newPage()
	s := mountInline(t, p, &fakeClient{outcome: OutcomeFailure})
	p.fill("Jane", "jane@example.com", "Hello", "Hi")

	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "form-status error", p.status.ClassName())

	s.client = &fakeClient{outcome: OutcomeSuccess}
	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "form-status success", p.status.ClassName())
}

func TestBusySubmitIsIgnored(t *testing.T) {
	p := newPage()
	client := &fakeClient{outcome: OutcomeSuccess}
	s := mountInline(t, p, client)
	p.fill("Jane", "jane@example.com", "Hello", "Hi")

	s.inFlight.Store(true)
	outcome, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, OutcomeNone, outcome)
	assert.Empty(t, client.requests)
}

func TestZeroOutcomeIsNotSuccess(t *testing.T) {
	var o Outcome
	assert.NotEqual(t, OutcomeSuccess, o)
	assert.Equal(t, "none", o.String())
}

func TestInvalidSubmitLogsFailedFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	p := newPage()
	client := &fakeClient{outcome: OutcomeSuccess}
	s, err := New(p.doc, client, log)
	require.NoError(t, err)
	s.spawn = func(fn func()) { fn() }
	s.Bind(context.Background())
	p.fill("Jane", "not-an-email", "Hello", "Hi")

	p.form.Fire(ui.EventSubmit, ui.Event{})

	assert.Empty(t, client.requests)
	assert.Contains(t, buf.String(), `"failed":{"email":"email"}`)

	buf.Reset()
	p.fill("Jane", "jane@example.com", "Hello", "Hi")
	p.form.Fire(ui.EventSubmit, ui.Event{})

	assert.Len(t, client.requests, 1)
	assert.Contains(t, buf.String(), `"outcome":"success"`)
}

func TestMountWithoutLabelWarns(t *testing.T) {
	p := newPage()
	delete(p.submit.Children, LabelSelector)
	assert.Nil(t, Mount(context.Background(), p.doc, &fakeClient{}, logging.Nop()))
	assert.Zero(t, p.form.Listeners(ui.EventSubmit))
}

func TestHTTPClientOutcomes(t *testing.T) {
	var gotAccept, gotName, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotMethod = r.Method
		gotName = r.FormValue("name")
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewHTTPClient(0)
	vals := url.Values{"name": {"Jane"}}

	assert.Equal(t, OutcomeSuccess, c.Send(context.Background(), Request{URL: srv.URL + "/contact", Values: vals}))
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Jane", gotName)

	assert.Equal(t, OutcomeFailure, c.Send(context.Background(), Request{URL: srv.URL + "/fail", Method: "post", Values: vals}))

	srv.Close()
	assert.Equal(t, OutcomeNetworkError, c.Send(context.Background(), Request{URL: srv.URL + "/contact", Values: vals}))
}
