package invite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"brandTracker/internal/models/brand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type inviterFunc func(ctx context.Context, inv Invitation) error

func (f inviterFunc) Invite(ctx context.Context, inv Invitation) error {
	return f(ctx, inv)
}

// scheduled captures AfterFunc calls so the close can be fired by hand.
type scheduled struct {
	delay time.Duration
	fn    func()
}

var acme = brand.Brand{ID: "b1", Name: "Acme", Company: "Acme Co"}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected error
	}{
		{email: "a@b.co", expected: nil},
		{email: "  a@b.co  ", expected: nil},
		{email: "a@b", expected: ErrInvalidEmail},
		{email: "a b@c.io", expected: ErrInvalidEmail},
		{email: "@c.io", expected: ErrInvalidEmail},
		{email: "", expected: ErrEmailRequired},
		{email: "   ", expected: ErrEmailRequired},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestWorkflow_Success(t *testing.T) {
	notifier := &recordingNotifier{}
	var sent []Invitation
	var timers []scheduled
	sentAt := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	w := NewWorkflow(
		inviterFunc(func(_ context.Context, inv Invitation) error {
			sent = append(sent, inv)
			return nil
		}),
		notifier,
		1500*time.Millisecond,
		WithAfterFunc(func(d time.Duration, fn func()) { timers = append(timers, scheduled{d, fn}) }),
		WithClock(func() time.Time { return sentAt }),
	)

	form := NewForm()
	out, err := w.Submit(context.Background(), form, acme, " a@b.co ")
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, "a@b.co", sent[0].Email)
	assert.Equal(t, brand.ID("b1"), sent[0].BrandID)
	assert.Equal(t, sentAt, sent[0].SentAt)
	require.NotNil(t, out.Invitation)
	assert.Equal(t, 1500*time.Millisecond, out.CloseAfter)
	assert.Contains(t, out.Message, "a@b.co")
	assert.Len(t, notifier.successes, 1)
	assert.Empty(t, notifier.errors)

	require.Len(t, timers, 1)
	assert.Equal(t, 1500*time.Millisecond, timers[0].delay)
	assert.True(t, form.IsOpen(), "form stays open until the delay elapses")
	assert.True(t, form.Submitting(), "form stays locked until it closes")

	_, err = w.Submit(context.Background(), form, acme, "c@d.io")
	assert.ErrorIs(t, err, ErrInProgress)
	assert.Len(t, sent, 1)
	assert.Len(t, notifier.successes, 1)

	timers[0].fn()
	assert.False(t, form.IsOpen())
	assert.False(t, form.Submitting())
}

func TestWorkflow_InvalidEmailNeverSends(t *testing.T) {
	notifier := &recordingNotifier{}
	called := false
	w := NewWorkflow(inviterFunc(func(context.Context, Invitation) error {
		called = true
		return nil
	}), notifier, time.Second)

	form := NewForm()
	_, err := w.Submit(context.Background(), form, acme, "a@b")

	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.False(t, called)
	assert.Len(t, notifier.errors, 1)
	assert.True(t, form.IsOpen())
	assert.False(t, form.Submitting())
}

func TestWorkflow_FailureKeepsFormOpen(t *testing.T) {
	notifier := &recordingNotifier{}
	closes := 0
	w := NewWorkflow(
		inviterFunc(func(context.Context, Invitation) error { return errors.New("boom") }),
		notifier,
		time.Second,
		WithAfterFunc(func(time.Duration, func()) { closes++ }),
	)

	form := NewForm()
	out, err := w.Submit(context.Background(), form, acme, "a@b.co")

	require.Error(t, err)
	assert.Nil(t, out.Invitation)
	assert.NotEmpty(t, out.Message)
	assert.Zero(t, closes)
	assert.True(t, form.IsOpen())
	assert.False(t, form.Submitting(), "the form is re-enabled")
	assert.Len(t, notifier.errors, 1)
	assert.Empty(t, notifier.successes)
}

func TestWorkflow_SecondSubmitWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	w := NewWorkflow(inviterFunc(func(context.Context, Invitation) error {
		close(started)
		<-release
		return nil
	}), &recordingNotifier{}, time.Second, WithAfterFunc(func(time.Duration, func()) {}))

	form := NewForm()
	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), form, acme, "a@b.co")
		done <- err
	}()

	<-started
	assert.True(t, form.Submitting())

	_, err := w.Submit(context.Background(), form, acme, "c@d.io")
	assert.ErrorIs(t, err, ErrInProgress)

	close(release)
	assert.NoError(t, <-done)
	assert.True(t, form.Submitting(), "the close is still pending")
}

func TestWorkflow_ClosedFormRejects(t *testing.T) {
	w := NewWorkflow(inviterFunc(func(context.Context, Invitation) error { return nil }), &recordingNotifier{}, time.Second)

	form := NewForm()
	form.Close()

	_, err := w.Submit(context.Background(), form, acme, "a@b.co")
	assert.ErrorIs(t, err, ErrInProgress)
}

func TestSimulatedInviter(t *testing.T) {
	inv := Invitation{BrandID: "b1", Email: "a@b.co"}

	assert.NoError(t, SimulatedInviter{}.Invite(context.Background(), inv))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := SimulatedInviter{Delay: time.Hour}.Invite(ctx, inv)
	assert.ErrorIs(t, err, context.Canceled)
}
