package tui

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/toast"
	"github.com/crossorg/hrconsole/internal/ux"
)

type fakeConsole struct {
	mu       sync.Mutex
	location string
	opened   []string
	loggedIn bool
	pages    map[string]ux.Renderable
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{
		loggedIn: true,
		pages: map[string]ux.Renderable{
			"/":              &ux.Detail{Title: "首页", Fields: []ux.Field{{Label: "未读通知", Value: "2"}}},
			"/notifications": &ux.Table{Title: "消息通知", Headers: []string{"ID", "标题"}, Rows: [][]string{{"42", "季度评价已开始"}}},
			"/login":         &ux.Detail{Title: "登录", Fields: []ux.Field{{Label: "状态", Value: "未登录"}}},
		},
	}
}

func (f *fakeConsole) Open(_ context.Context, path string) (ux.Renderable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, path)
	if !f.loggedIn && path != "/login" {
		f.location = "/login?redirect=" + path
		return nil, errors.NewNotLoggedInError()
	}
	page, ok := f.pages[path]
	if !ok {
		return nil, errors.NewRouteNotFoundError(path)
	}
	f.location = path
	return page, nil
}

func (f *fakeConsole) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = false
}

func (f *fakeConsole) Location() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.location
}

// drive runs cmd synchronously and feeds its message back into the model.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if _, ok := msg.(PageLoadedMsg); !ok {
		return m
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeLine(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return drive(t, next.(Model), cmd)
}

func started(t *testing.T, c Console) Model {
	t.Helper()
	m := NewModel(context.Background(), c, "/", true)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	return drive(t, m, m.open(m.path))
}

func TestNewModel(t *testing.T) {
	m := NewModel(context.Background(), newFakeConsole(), "", true)

	if m.path != "/" {
		t.Errorf("Expected start path '/', got '%s'", m.path)
	}
	if m.currentView != ViewMain {
		t.Errorf("Expected ViewMain, got %v", m.currentView)
	}
	if m.quitting || m.wantsLogin {
		t.Error("Expected a fresh model to keep running")
	}
	if got := m.View(); got != "Initializing..." {
		t.Errorf("Expected initializing view before the first resize, got %q", got)
	}
}

func TestOpenCommand(t *testing.T) {
	c := newFakeConsole()
	m := started(t, c)

	m = typeLine(t, m, "open /notifications")
	if m.Path() != "/notifications" {
		t.Fatalf("Expected path /notifications, got %s", m.Path())
	}
	if !strings.Contains(m.View(), "季度评价已开始") {
		t.Error("Expected the notification table in the view")
	}
	if len(m.history) != 1 || m.history[0] != "/" {
		t.Errorf("Expected history [/], got %v", m.history)
	}

	m = typeLine(t, m, "back")
	if m.Path() != "/" {
		t.Errorf("Expected back to return to /, got %s", m.Path())
	}
	if len(m.history) != 0 {
		t.Errorf("Expected empty history, got %v", m.history)
	}
}

func TestBarePathIsOpen(t *testing.T) {
	m := started(t, newFakeConsole())
	m = typeLine(t, m, "/notifications")
	if m.Path() != "/notifications" {
		t.Errorf("Expected path /notifications, got %s", m.Path())
	}
}

func TestOpenErrorKeepsPage(t *testing.T) {
	m := started(t, newFakeConsole())
	m = typeLine(t, m, "/nowhere")

	if !errors.HasCode(m.lastErr, errors.ErrCodeRouteNotFound) {
		t.Fatalf("Expected route not found, got %v", m.lastErr)
	}
	if m.page == nil {
		t.Error("Expected the previous page to stay visible")
	}
	if !strings.Contains(m.View(), "ROUTE-002") {
		t.Error("Expected the error code in the view")
	}
}

func TestUnknownCommand(t *testing.T) {
	m := started(t, newFakeConsole())
	m = typeLine(t, m, "frobnicate")
	if m.lastErr == nil || !strings.Contains(m.lastErr.Error(), "unknown command: frobnicate") {
		t.Errorf("Expected unknown command error, got %v", m.lastErr)
	}
}

func TestLogoutOpensLogin(t *testing.T) {
	c := newFakeConsole()
	m := started(t, c)
	m = typeLine(t, m, "logout")

	if m.Path() != "/login" {
		t.Errorf("Expected /login after logout, got %s", m.Path())
	}
	if c.loggedIn {
		t.Error("Expected the console to be logged out")
	}
}

func TestLoginQuitsShell(t *testing.T) {
	m := started(t, newFakeConsole())
	m.input.SetValue("login")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !m.WantsLogin() {
		t.Error("Expected WantsLogin after the login command")
	}
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestNavigatedElsewhereReloads(t *testing.T) {
	c := newFakeConsole()
	m := started(t, c)

	next, cmd := m.Update(NavigatedMsg{Path: "/login"})
	m = next.(Model)
	if !m.loading {
		t.Fatal("Expected an outside navigation to start loading")
	}
	m = drive(t, m, cmd)
	if m.Path() != "/login" {
		t.Errorf("Expected /login, got %s", m.Path())
	}

	// The shell's own navigation is already reflected.
	_, cmd = m.Update(NavigatedMsg{Path: "/login"})
	if cmd != nil {
		t.Error("Expected no reload for the current path")
	}
}

func TestToastOverlay(t *testing.T) {
	m := started(t, newFakeConsole())

	next, _ := m.Update(ToastShownMsg{Message: toast.Message{Key: "a", Kind: toast.KindError, Content: "无权限"}})
	m = next.(Model)
	next, _ = m.Update(ToastShownMsg{Message: toast.Message{Key: "b", Kind: toast.KindSuccess, Content: "已保存"}})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "✗ 无权限") || !strings.Contains(view, "✓ 已保存") {
		t.Errorf("Expected both toasts in the view, got:\n%s", view)
	}

	next, _ = m.Update(ToastHiddenMsg{Key: "a"})
	m = next.(Model)
	if len(m.toasts) != 1 || m.toasts[0].Key != "b" {
		t.Errorf("Expected only toast b to remain, got %v", m.toasts)
	}
}

func TestHelpToggle(t *testing.T) {
	m := started(t, newFakeConsole())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = next.(Model)
	if m.currentView != ViewHelp {
		t.Fatal("Expected help view")
	}
	if !strings.Contains(m.View(), "open <path>") {
		t.Error("Expected command list in help")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.currentView != ViewMain {
		t.Error("Expected Esc to return to the main view")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := started(t, newFakeConsole())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).quitting {
		t.Error("Expected quitting after ctrl+c")
	}
	if cmd == nil {
		t.Error("Expected tea.Quit")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		cmd  string
		arg  string
	}{
		{"/employees", "open", "/employees"},
		{"open /talent-market?keyword=张", "open", "/talent-market?keyword=张"},
		{"BACK", "back", ""},
		{"o   /about", "o", "/about"},
	}
	for _, tt := range tests {
		cmd, arg := parseCommand(tt.line)
		if cmd != tt.cmd || arg != tt.arg {
			t.Errorf("parseCommand(%q) = (%q, %q), want (%q, %q)", tt.line, cmd, arg, tt.cmd, tt.arg)
		}
	}
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) received() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

// waitForMessages polls until s has received n messages.
func waitForMessages(t *testing.T, s *recordingSender, n int) []tea.Msg {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if msgs := s.received(); len(msgs) >= n {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	msgs := s.received()
	t.Fatalf("Expected %d messages, got %d", n, len(msgs))
	return nil
}

func TestPresenterSendsMessages(t *testing.T) {
	s := &recordingSender{}
	p := NewPresenter(s)
	defer p.Close()

	p.Show(toast.Message{Key: "k", Content: "hi"})
	p.Hide("k")

	msgs := waitForMessages(t, s, 2)
	if shown, ok := msgs[0].(ToastShownMsg); !ok || shown.Message.Content != "hi" {
		t.Errorf("Expected ToastShownMsg, got %#v", msgs[0])
	}
	if hidden, ok := msgs[1].(ToastHiddenMsg); !ok || hidden.Key != "k" {
		t.Errorf("Expected ToastHiddenMsg, got %#v", msgs[1])
	}
}

func TestPresenterKeepsOrder(t *testing.T) {
	s := &recordingSender{}
	p := NewPresenter(s)
	defer p.Close()

	for i := 0; i < 50; i++ {
		p.Hide(strconv.Itoa(i))
	}

	msgs := waitForMessages(t, s, 50)
	for i, msg := range msgs {
		if hidden, ok := msg.(ToastHiddenMsg); !ok || hidden.Key != strconv.Itoa(i) {
			t.Fatalf("message %d = %#v, want key %d", i, msg, i)
		}
	}
}

// stuckSender blocks every Send until release is closed.
type stuckSender struct {
	release chan struct{}
}

func (s *stuckSender) Send(tea.Msg) { <-s.release }

func TestBusyProgramDoesNotStallNotifications(t *testing.T) {
	s := &stuckSender{release: make(chan struct{})}
	defer close(s.release)
	p := NewPresenter(s)
	defer p.Close()

	limiter := toast.NewLimiter(p, toast.Options{Duration: time.Hour})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			limiter.Info("queued")
		}
		limiter.Active()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a program that is not reading messages")
	}
}

func TestClosedPresenterStopsDelivering(t *testing.T) {
	s := &recordingSender{}
	p := NewPresenter(s)
	p.Close()
	p.Close()

	p.Show(toast.Message{Key: "late"})
	time.Sleep(20 * time.Millisecond)

	if msgs := s.received(); len(msgs) != 0 {
		t.Errorf("Expected no messages after Close, got %#v", msgs)
	}
}

func TestSwitchPresenter(t *testing.T) {
	first, second := &recordingSender{}, &recordingSender{}
	a, b := NewPresenter(first), NewPresenter(second)
	defer a.Close()
	defer b.Close()
	sw := NewSwitchPresenter(a)

	sw.Show(toast.Message{Key: "1"})
	prev := sw.Use(b)
	sw.Show(toast.Message{Key: "2"})
	sw.Use(prev)
	sw.Hide("2")

	waitForMessages(t, first, 2)
	waitForMessages(t, second, 1)
}
