// Package terminal is a text front-end: a tcell HUD showing the avatar, the open overlay step and
// recent events, with keyboard flight and number-key navigation.
package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/island"
	"github.com/gdamore/tcell/v2"
)

// Target receives navigation commands typed at the terminal.
type Target interface {
	Submit(cmd island.Command)
}

// Terminal is a tcell HUD and an input source. Terminals report no key releases, so movement keys
// stay held for the keyboard's hold window after each press or repeat.
type Terminal interface {
	input.Source

	// Run takes over the terminal until ctx is done or the quit key is pressed.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: the screen could not be opened
	Run(ctx context.Context) error

	// Render stores the state drawn on the next refresh. Safe for concurrent use.
	//
	// Parameters:
	//   - snap: the island state after a tick
	Render(snap island.Snapshot)

	// Log appends a line to the event panel.
	Log(line string)

	// Attach logs bus events to the event panel.
	//
	// Parameters:
	//   - bus: the event bus to listen on
	//
	// Returns:
	//   - func(): detaches the listener
	Attach(bus event.Bus) func()
}

type terminalImpl struct {
	target   Target
	keyboard input.Keyboard
	onQuit   func()
	refresh  time.Duration
	maxLog   int

	mu   sync.Mutex
	snap island.Snapshot
	logs []string
}

var _ Terminal = &terminalImpl{}

// NewTerminal creates a terminal front-end submitting commands to target.
//
// Parameters:
//   - target: receives navigation commands
//   - options: functional options to configure the terminal
//
// Returns:
//   - Terminal: the front-end
func NewTerminal(target Target, options ...TerminalBuilderOption) Terminal {
	t := &terminalImpl{
		target:  target,
		refresh: 100 * time.Millisecond,
		maxLog:  6,
	}
	for _, option := range options {
		option(t)
	}
	if t.keyboard == nil {
		t.keyboard = input.NewKeyboard()
	}
	return t
}

func (t *terminalImpl) Intent() input.Intent {
	return t.keyboard.Intent()
}

func (t *terminalImpl) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(t.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.draw(screen)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if t.handleKey(ev.Key(), ev.Rune()) {
					if t.onQuit != nil {
						t.onQuit()
					}
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

// handleKey applies one key press and reports whether it asked to quit.
func (t *terminalImpl) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		t.keyboard.Tap(common.KeyUp)
	case tcell.KeyDown:
		t.keyboard.Tap(common.KeyDown)
	case tcell.KeyLeft:
		t.keyboard.Tap(common.KeyLeft)
	case tcell.KeyRight:
		t.keyboard.Tap(common.KeyRight)
	case tcell.KeyRune:
		return t.handleRune(r)
	}
	return false
}

func (t *terminalImpl) handleRune(r rune) bool {
	if r == 'q' {
		return true
	}
	code, ok := common.KeyForRune(r)
	if !ok {
		return false
	}
	if cmd, ok := island.CommandForKey(code); ok {
		t.target.Submit(cmd)
		return false
	}
	t.keyboard.Tap(code)
	return false
}

func (t *terminalImpl) Render(snap island.Snapshot) {
	t.mu.Lock()
	t.snap = snap
	t.mu.Unlock()
}

func (t *terminalImpl) Log(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = append(t.logs, line)
	if len(t.logs) > t.maxLog {
		t.logs = t.logs[len(t.logs)-t.maxLog:]
	}
}

func (t *terminalImpl) Attach(bus event.Bus) func() {
	return bus.SubscribeAll(func(e event.Event) {
		t.Log(describe(e))
	})
}

func (t *terminalImpl) draw(screen tcell.Screen) {
	t.mu.Lock()
	lines := hudLines(t.snap, t.logs)
	t.mu.Unlock()

	screen.Clear()
	title := tcell.StyleDefault.Bold(true)
	for y, line := range lines {
		style := tcell.StyleDefault
		if y == 0 {
			style = title
		}
		x := 0
		for _, r := range line {
			screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	screen.Show()
}
