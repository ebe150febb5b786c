// Package toast shows transient notifications with a cap on how many are
// visible at once and on how many are admitted per time window.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crossorg/hrconsole/internal/log"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Default limits.
const (
	DefaultMaxVisible   = 2
	DefaultMaxPerWindow = 5
	DefaultWindow       = 3 * time.Second
	DefaultDuration     = 3 * time.Second
)

// Message is a notification handed to a Presenter.
type Message struct {
	Key       string
	Kind      Kind
	Content   string
	Duration  time.Duration
	Timestamp time.Time
}

// Presenter displays and hides messages. Calls are made with the limiter
// locked, so implementations must not call back into the Limiter.
type Presenter interface {
	Show(msg Message)
	Hide(key string)
}

// Options configures a Limiter. Zero values take the defaults.
type Options struct {
	MaxVisible   int
	MaxPerWindow int
	Window       time.Duration
	Duration     time.Duration

	// Now overrides the clock used for the admission window.
	Now    func() time.Time
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxVisible <= 0 {
		o.MaxVisible = DefaultMaxVisible
	}
	if o.MaxPerWindow <= 0 {
		o.MaxPerWindow = DefaultMaxPerWindow
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.Discard()
	}
	return o
}

// Limiter admits notifications and tracks the visible ones.
type Limiter struct {
	opts      Options
	presenter Presenter
	log       *log.Logger

	mu       sync.Mutex
	active   []*Toast
	admitted []time.Time
}

// Toast is a handle to a shown notification.
type Toast struct {
	Message

	limiter *Limiter
	timer   *time.Timer
	closed  bool
}

// NewLimiter creates a Limiter that renders through p.
func NewLimiter(p Presenter, opts Options) *Limiter {
	if p == nil {
		p = NopPresenter{}
	}
	opts = opts.withDefaults()
	return &Limiter{
		opts:      opts,
		presenter: p,
		log:       opts.Logger.WithComponent("toast"),
	}
}

// Notify shows a message unless the admission window is full. When the
// visible cap is reached the oldest toast is dismissed first, whatever its
// kind. A non-positive duration uses the configured default.
func (l *Limiter) Notify(kind Kind, content string, duration time.Duration) (*Toast, bool) {
	if duration <= 0 {
		duration = l.opts.Duration
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.opts.Now()
	l.purgeLocked(now)

	if len(l.admitted) >= l.opts.MaxPerWindow {
		l.log.Warn("notification dropped", "kind", string(kind), "content", content,
			"window", l.opts.Window.String(), "limit", l.opts.MaxPerWindow)
		return nil, false
	}
	l.admitted = append(l.admitted, now)

	for len(l.active) >= l.opts.MaxVisible {
		l.dismissLocked(l.active[0])
	}

	t := &Toast{
		Message: Message{
			Key:       uuid.NewString(),
			Kind:      kind,
			Content:   content,
			Duration:  duration,
			Timestamp: now,
		},
		limiter: l,
	}
	l.active = append(l.active, t)
	l.presenter.Show(t.Message)
	t.timer = time.AfterFunc(duration, t.Dismiss)

	return t, true
}

// purgeLocked drops admissions older than the window. One exactly as old as
// the window still counts.
func (l *Limiter) purgeLocked(now time.Time) {
	cutoff := now.Add(-l.opts.Window)
	keep := l.admitted[:0]
	for _, ts := range l.admitted {
		if !ts.Before(cutoff) {
			keep = append(keep, ts)
		}
	}
	l.admitted = keep
}

func (l *Limiter) dismissLocked(t *Toast) {
	if t.closed {
		return
	}
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
	}
	for i, a := range l.active {
		if a == t {
			l.active = append(l.active[:i], l.active[i+1:]...)
			break
		}
	}
	l.presenter.Hide(t.Key)
}

// Dismiss closes the toast. Repeated calls are no-ops.
func (t *Toast) Dismiss() {
	t.limiter.mu.Lock()
	defer t.limiter.mu.Unlock()
	t.limiter.dismissLocked(t)
}

// Error shows an error toast for the default duration; nil when it was dropped.
func (l *Limiter) Error(content string) *Toast {
	t, _ := l.Notify(KindError, content, 0)
	return t
}

// Success shows a success toast for the default duration; nil when it was dropped.
func (l *Limiter) Success(content string) *Toast {
	t, _ := l.Notify(KindSuccess, content, 0)
	return t
}

// Warning shows a warning toast for the default duration; nil when it was dropped.
func (l *Limiter) Warning(content string) *Toast {
	t, _ := l.Notify(KindWarning, content, 0)
	return t
}

// Info shows an info toast for the default duration; nil when it was dropped.
func (l *Limiter) Info(content string) *Toast {
	t, _ := l.Notify(KindInfo, content, 0)
	return t
}

// ClearAll hides every visible toast and resets the admission window.
func (l *Limiter) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for len(l.active) > 0 {
		l.dismissLocked(l.active[0])
	}
	l.admitted = nil
}

// Active returns the visible messages, oldest first.
func (l *Limiter) Active() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Message, len(l.active))
	for i, t := range l.active {
		out[i] = t.Message
	}
	return out
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) Show(Message) {}
func (NopPresenter) Hide(string)  {}
