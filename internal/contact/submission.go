package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRelay is wrapped by every error a relay reports for a rejected
// delivery.
var ErrRelay = errors.New("mail relay rejected submission")

// Submission is the snapshot of a form taken when it was submitted.
type Submission struct {
	ID     string
	Fields map[string]string
	At     time.Time
}

// NewSubmission snapshots values under a fresh id.
func NewSubmission(values map[string]string) Submission {
	fields := make(map[string]string, len(values))
	for k, v := range values {
		fields[k] = v
	}
	return Submission{ID: uuid.NewString(), Fields: fields, At: time.Now()}
}

// Field returns the named field value.
func (s Submission) Field(name string) string { return s.Fields[name] }

// Relay hands a submission to an external mail-relay service.
type Relay interface {
	Send(ctx context.Context, sub Submission) error
}

// RelayFunc adapts a function to a Relay.
type RelayFunc func(ctx context.Context, sub Submission) error

func (f RelayFunc) Send(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// RelayError is returned when the relay answered with a failure status.
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("mail relay: status %d", e.Status)
	}
	return fmt.Sprintf("mail relay: status %d: %s", e.Status, e.Body)
}

func (e *RelayError) Unwrap() error { return ErrRelay }

// DeliveryStatus is the recorded outcome of a submission.
type DeliveryStatus string

const (
	StatusSent   DeliveryStatus = "sent"
	StatusFailed DeliveryStatus = "failed"
)

// Delivery is the journal entry for one submission. It never carries the
// submitted field values.
type Delivery struct {
	SubmissionID string
	Relay        string
	Status       DeliveryStatus
	Error        string
	At           time.Time
}

// Journal records delivery outcomes.
type Journal interface {
	RecordDelivery(ctx context.Context, d Delivery) error
}
