package main

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/island"
)

// submitter receives navigation commands.
type submitter interface {
	Submit(cmd island.Command)
}

// windowControls routes window key events: navigation keys submit one command per press, every
// other key is held on the keyboard until released.
type windowControls struct {
	keyboard input.Keyboard
	target   submitter
	down     map[uint32]bool
}

func newWindowControls(kb input.Keyboard, target submitter) *windowControls {
	return &windowControls{keyboard: kb, target: target, down: make(map[uint32]bool)}
}

func (c *windowControls) keyDown(key uint32) {
	if cmd, ok := island.CommandForKey(key); ok {
		if !c.down[key] {
			c.down[key] = true
			c.target.Submit(cmd)
		}
		return
	}
	c.keyboard.KeyDown(key)
}

func (c *windowControls) keyUp(key uint32) {
	if _, ok := island.CommandForKey(key); ok {
		delete(c.down, key)
		return
	}
	c.keyboard.KeyUp(key)
}

// statusTitle summarizes a snapshot for the window title bar.
func statusTitle(snap island.Snapshot) string {
	var b strings.Builder
	b.WriteString("skyfolio | ")
	b.WriteString(string(snap.Step))
	fmt.Fprintf(&b, " | %d/%d markers (%.0f%%)", len(snap.Collected), snap.Total, snap.Progress)
	if snap.CanSkip {
		b.WriteString(" | K to skip")
	}
	return b.String()
}
