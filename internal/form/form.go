// Package form holds the state of a certificate request form and submits it
// to the certificate service.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sunthewhat/certificate-automation/type/payload"
	"github.com/sunthewhat/certificate-automation/type/response"
)

const (
	DefaultEndpoint = "http://localhost:8000/certificates/create"
	DateLayout      = "02/01/2006"

	SuccessMessage = "Certificate created successfully!"
	ErrorMessage   = "Some error occurred."
)

var (
	ErrNameRequired   = errors.New("form: name is required")
	ErrCourseRequired = errors.New("form: course is required")
	ErrSubmitInFlight = errors.New("form: a submission is already in flight")
)

// ClearPolicy decides when the fields are reset after a submission.
type ClearPolicy int

const (
	// ClearAlways resets the fields whatever the outcome.
	ClearAlways ClearPolicy = iota
	// ClearOnSuccess keeps the fields after a failure so the user can resubmit.
	ClearOnSuccess
)

// Notifier shows the outcome of a submission to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Config controls where a form submits and what it keeps afterwards.
type Config struct {
	Endpoint    string
	ClearPolicy ClearPolicy
	HTTPClient  *http.Client
}

// State is a snapshot of the form fields.
type State struct {
	Name       string
	Course     string
	Date       *time.Time
	Submitting bool
}

// Submission is the outcome of a request that was actually sent.
type Submission struct {
	Succeeded  bool
	StatusCode int
	Result     *payload.CreateCertificateResult
	Err        error
}

// Form holds the certificate fields and submits them at most once at a time.
type Form struct {
	cfg      Config
	notifier Notifier

	mu     sync.Mutex
	name   string
	course string
	date   *time.Time

	submitting atomic.Bool
}

// New returns a form posting to cfg.Endpoint, or DefaultEndpoint when empty.
func New(cfg Config, notifier Notifier) *Form {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Form{cfg: cfg, notifier: notifier}
}

// FormatDate renders d as DD/MM/YYYY, or "" when no date is selected.
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

func (f *Form) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
}

func (f *Form) SetCourse(course string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.course = course
}

func (f *Form) SetDate(date time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.date = &date
}

func (f *Form) ClearDate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.date = nil
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Name:       f.name,
		Course:     f.course,
		Date:       f.date,
		Submitting: f.submitting.Load(),
	}
}

func (f *Form) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = ""
	f.course = ""
	f.date = nil
}

// Submit sends the current fields once. It returns an error only when
// nothing was sent: a required field is empty or another submission is in
// flight. Every sent request notifies exactly once.
func (f *Form) Submit(ctx context.Context) (*Submission, error) {
	state := f.State()
	if state.Name == "" {
		return nil, ErrNameRequired
	}
	if state.Course == "" {
		return nil, ErrCourseRequired
	}

	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer f.submitting.Store(false)

	body := payload.CreateCertificatePayload{
		Name:   state.Name,
		Course: state.Course,
		Date:   FormatDate(state.Date),
	}

	sub := f.send(ctx, body)

	if sub.Succeeded || f.cfg.ClearPolicy == ClearAlways {
		f.reset()
	}

	if sub.Succeeded {
		slog.Info("Certificate request succeeded", "status", sub.StatusCode, "link", sub.Result.ViewLink)
		f.notifier.Success(SuccessMessage)
	} else {
		slog.Error("Certificate request failed", "status", sub.StatusCode, "error", sub.Err)
		f.notifier.Error(ErrorMessage)
	}

	return sub, nil
}

func (f *Form) send(ctx context.Context, body payload.CreateCertificatePayload) *Submission {
	raw, err := json.Marshal(body)
	if err != nil {
		return &Submission{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return &Submission{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.cfg.HTTPClient.Do(req)
	if err != nil {
		return &Submission{Err: err}
	}
	defer resp.Body.Close()

	sub := &Submission{StatusCode: resp.StatusCode}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure response.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Message != nil {
			sub.Err = fmt.Errorf("server responded %d: %s", resp.StatusCode, *failure.Message)
		} else {
			sub.Err = fmt.Errorf("server responded %d", resp.StatusCode)
		}
		return sub
	}

	result := new(payload.CreateCertificateResult)
	envelope := response.SuccessResponse{Data: result}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		sub.Err = fmt.Errorf("failed to decode response: %w", err)
		return sub
	}

	sub.Succeeded = true
	sub.Result = result
	return sub
}
