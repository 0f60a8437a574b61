package invite

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailRequired = errors.New("введите email")
	ErrInvalidEmail  = errors.New("введите корректный email")
	ErrInProgress    = errors.New("приглашение уже отправляется")
)

// local@domain.tld, домен верхнего уровня дальше не проверяется.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

type Invitation struct {
	ID        uuid.UUID `json:"id"`
	BrandID   brand.ID  `json:"brandId"`
	BrandName string    `json:"brandName"`
	Email     string    `json:"email"`
	SentAt    time.Time `json:"sentAt"`
}

type Inviter interface {
	Invite(ctx context.Context, inv Invitation) error
}

// SimulatedInviter заменяет эндпоинт приглашений, которого у backend пока нет:
// ждёт Delay и завершается успешно.
type SimulatedInviter struct {
	Delay time.Duration
}

func (s SimulatedInviter) Invite(ctx context.Context, inv Invitation) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		logger.Info("Invite: Приглашение отправлено (симуляция)",
			zap.String("invite_id", inv.ID.String()),
			zap.String("brand_id", inv.BrandID.String()))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("отправка приглашения: %w", ctx.Err())
	}
}

// Notifier - сообщает пользователю результат отправки.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	logger.Info("Invite: Уведомление", zap.String("kind", "success"), zap.String("message", msg))
}

func (LogNotifier) Error(msg string) {
	logger.Warn("Invite: Уведомление", zap.String("kind", "error"), zap.String("message", msg))
}

// Form - состояние диалога приглашения. После успешной отправки форма остаётся
// заблокированной до закрытия.
type Form struct {
	mu         sync.Mutex
	open       bool
	submitting bool
}

func NewForm() *Form {
	return &Form{open: true}
}

func (f *Form) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *Form) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting || !f.open {
		return false
	}
	f.submitting = true
	return true
}

func (f *Form) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
}

func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.submitting = false
}

type Outcome struct {
	Invitation *Invitation   `json:"invitation,omitempty"`
	Message    string        `json:"message"`
	CloseAfter time.Duration `json:"-"`
}

type Workflow struct {
	inviter    Inviter
	notifier   Notifier
	closeDelay time.Duration
	afterFunc  func(time.Duration, func())
	now        func() time.Time
}

type Option func(*Workflow)

func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(w *Workflow) {
		w.afterFunc = fn
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

func NewWorkflow(inviter Inviter, notifier Notifier, closeDelay time.Duration, opts ...Option) *Workflow {
	w := &Workflow{
		inviter:    inviter,
		notifier:   notifier,
		closeDelay: closeDelay,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submit проверяет email, отправляет приглашение и уведомляет пользователя.
// После успеха форма остаётся заблокированной и закрывается через closeDelay.
// При ошибке форма остаётся открытой и снова доступна. Повторов нет.
func (w *Workflow) Submit(ctx context.Context, form *Form, b brand.Brand, email string) (Outcome, error) {
	if err := ValidateEmail(email); err != nil {
		w.notifier.Error(err.Error())
		return Outcome{Message: err.Error()}, err
	}

	if !form.begin() {
		return Outcome{Message: ErrInProgress.Error()}, ErrInProgress
	}

	inv := Invitation{
		ID:        uuid.New(),
		BrandID:   b.ID,
		BrandName: b.Name,
		Email:     strings.TrimSpace(email),
		SentAt:    w.now(),
	}

	if err := w.inviter.Invite(ctx, inv); err != nil {
		logger.Error("Invite: Не удалось отправить приглашение", err,
			zap.String("brand_id", b.ID.String()))
		msg := "Не удалось отправить приглашение"
		w.notifier.Error(msg)
		form.finish()
		return Outcome{Message: msg}, fmt.Errorf("приглашение %s: %w", inv.Email, err)
	}

	msg := fmt.Sprintf("Приглашение отправлено на %s", inv.Email)
	w.notifier.Success(msg)
	w.afterFunc(w.closeDelay, form.Close)

	return Outcome{Invitation: &inv, Message: msg, CloseAfter: w.closeDelay}, nil
}
