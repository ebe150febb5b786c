package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crossorg/hrconsole/internal/toast"
)

// Sender delivers a message to a running program; *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Presenter forwards toasts into the shell as messages. Show and Hide only
// queue; a single goroutine delivers in order, so a busy or stopped event
// loop never holds up the limiter.
type Presenter struct {
	sender Sender

	mu      sync.Mutex
	pending []tea.Msg
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewPresenter creates a presenter bound to s. Call Close when the program
// has exited.
func NewPresenter(s Sender) *Presenter {
	p := &Presenter{
		sender: s,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go p.forward()
	return p
}

func (p *Presenter) Show(msg toast.Message) {
	p.enqueue(ToastShownMsg{Message: msg})
}

func (p *Presenter) Hide(key string) {
	p.enqueue(ToastHiddenMsg{Key: key})
}

// Close stops delivery. Messages still queued are dropped.
func (p *Presenter) Close() {
	p.once.Do(func() { close(p.done) })
}

func (p *Presenter) enqueue(msg tea.Msg) {
	p.mu.Lock()
	p.pending = append(p.pending, msg)
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Presenter) forward() {
	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}

		p.mu.Lock()
		batch := p.pending
		p.pending = nil
		p.mu.Unlock()

		for _, msg := range batch {
			select {
			case <-p.done:
				return
			default:
			}
			p.sender.Send(msg)
		}
	}
}

// SwitchPresenter hands toasts to whichever presenter is current. The CLI
// starts with a terminal presenter and switches to the shell while it runs.
type SwitchPresenter struct {
	mu      sync.RWMutex
	current toast.Presenter
}

// NewSwitchPresenter starts with p.
func NewSwitchPresenter(p toast.Presenter) *SwitchPresenter {
	return &SwitchPresenter{current: p}
}

// Use replaces the current presenter and returns the previous one.
func (s *SwitchPresenter) Use(p toast.Presenter) toast.Presenter {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = p
	return prev
}

func (s *SwitchPresenter) Show(msg toast.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.current.Show(msg)
}

func (s *SwitchPresenter) Hide(key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.current.Hide(key)
}
