// Package ssh adapts gliderlabs/ssh sessions to tcell terminals.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty implements tcell.Tty over one SSH session, so every connected
// player drives an independent tcell.Screen.
type Tty struct {
	session gossh.Session
	term    string

	mu       sync.Mutex
	window   gossh.Window
	winCh    <-chan gossh.Window
	onResize func()

	stop     chan struct{}
	stopOnce sync.Once
}

// Open wraps s. It reports false when the client did not request a pty.
func Open(s gossh.Session) (*Tty, bool) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, false
	}
	return &Tty{
		session: s,
		term:    pty.Term,
		window:  pty.Window,
		winCh:   winCh,
		stop:    make(chan struct{}),
	}, true
}

// Term is the terminal type from the pty request.
func (t *Tty) Term() string { return t.term }

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close ends the resize watcher. The channel itself belongs to the
// server handler and closes when it returns.
func (t *Tty) Close() error {
	t.stopOnce.Do(func() { close(t.stop) })
	return nil
}

func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the most recent client window size.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb and starts draining window-change requests
// until the session ends or the tty is closed.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.stop:
				return
			case win, ok := <-t.winCh:
				if !ok {
					return
				}
				t.mu.Lock()
				t.window = win
				fn := t.onResize
				t.mu.Unlock()
				if fn != nil {
					fn()
				}
			}
		}
	}()
}
