package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single relay round trip.
const DefaultTimeout = 10 * time.Second

// Notices shown to the visitor.
const (
	SuccessNotice = "Message Sent Successfully!"
	FailureNotice = "Failed to send message. Please try again."
)

// ErrInFlight is returned by Begin while an earlier submission is still
// waiting on the relay.
var ErrInFlight = errors.New("a submission is already in flight")

// Phase is where the submitter is in its Idle → Submitting → Succeeded or
// Failed cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Event is emitted on every phase change.
type Event struct {
	Phase        Phase
	SubmissionID string
	Err          error
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithTimeout bounds each relay round trip. Zero or negative keeps the
// default.
func WithTimeout(d time.Duration) Option {
	return func(s *Submitter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Submitter) {
		if l != nil {
			s.log = l
		}
	}
}

// WithJournal records every delivery outcome in j.
func WithJournal(j Journal) Option {
	return func(s *Submitter) { s.journal = j }
}

// WithRelayName labels journal entries and log lines with the relay kind.
func WithRelayName(name string) Option {
	return func(s *Submitter) { s.relayName = name }
}

// Submitter drives one contact form through the mail relay. Begin and Finish
// must run on the owner's event loop; Deliver only reads configuration and
// may run anywhere.
type Submitter struct {
	relay     Relay
	relayName string
	alert     *Alert
	timeout   time.Duration
	log       *zap.Logger
	journal   Journal

	phase    Phase
	inFlight string
	lastErr  error
	subs     []func(Event)
}

// NewSubmitter returns an idle submitter relaying through relay and showing
// alert on success.
func NewSubmitter(relay Relay, alert *Alert, opts ...Option) *Submitter {
	s := &Submitter{
		relay:     relay,
		relayName: "relay",
		alert:     alert,
		timeout:   DefaultTimeout,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Submitter) Phase() Phase { return s.phase }

// Err returns the error of the last failed submission.
func (s *Submitter) Err() error { return s.lastErr }

// Subscribe registers fn for phase changes.
func (s *Submitter) Subscribe(fn func(Event)) {
	s.subs = append(s.subs, fn)
}

// Begin snapshots form and enters the submitting phase.
func (s *Submitter) Begin(form Form) (Submission, error) {
	if s.phase == PhaseSubmitting {
		return Submission{}, ErrInFlight
	}
	sub := NewSubmission(form.Values())
	s.inFlight = sub.ID
	s.lastErr = nil
	s.transition(Event{Phase: PhaseSubmitting, SubmissionID: sub.ID})
	return sub, nil
}

// Deliver hands sub to the relay and waits for its answer, for at most the
// configured timeout.
func (s *Submitter) Deliver(ctx context.Context, sub Submission) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.relay.Send(ctx, sub)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("mail relay did not answer within %s: %w", s.timeout, err)
	}
	return err
}

// Finish applies the relay's answer for sub. On success the alert is shown
// and form is cleared; on failure form is left as the visitor typed it. An
// answer for anything but the in-flight submission is ignored.
func (s *Submitter) Finish(ctx context.Context, form Form, sub Submission, err error) Phase {
	if s.phase != PhaseSubmitting || sub.ID != s.inFlight {
		return s.phase
	}
	s.inFlight = ""
	s.record(ctx, sub, err)

	if err != nil {
		s.lastErr = err
		s.log.Error("contact form delivery failed",
			zap.String("submission", sub.ID),
			zap.String("relay", s.relayName),
			zap.Error(err),
		)
		s.transition(Event{Phase: PhaseFailed, SubmissionID: sub.ID, Err: err})
		return s.phase
	}

	s.log.Info("contact form delivered",
		zap.String("submission", sub.ID),
		zap.String("relay", s.relayName),
	)
	if s.alert != nil {
		s.alert.Show()
	}
	form.Reset()
	s.transition(Event{Phase: PhaseSucceeded, SubmissionID: sub.ID})
	return s.phase
}

// Submit runs Begin, Deliver and Finish back to back and returns the relay
// error, if any.
func (s *Submitter) Submit(ctx context.Context, form Form) error {
	sub, err := s.Begin(form)
	if err != nil {
		return err
	}
	err = s.Deliver(ctx, sub)
	s.Finish(ctx, form, sub, err)
	return err
}

func (s *Submitter) transition(ev Event) {
	s.phase = ev.Phase
	for _, fn := range s.subs {
		fn(ev)
	}
}

func (s *Submitter) record(ctx context.Context, sub Submission, err error) {
	if s.journal == nil {
		return
	}
	d := Delivery{
		SubmissionID: sub.ID,
		Relay:        s.relayName,
		Status:       StatusSent,
		At:           time.Now(),
	}
	if err != nil {
		d.Status = StatusFailed
		d.Error = err.Error()
	}
	if jerr := s.journal.RecordDelivery(context.WithoutCancel(ctx), d); jerr != nil {
		s.log.Warn("recording delivery", zap.String("submission", sub.ID), zap.Error(jerr))
	}
}
