package input

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
)

func TestIntentAxes(t *testing.T) {
	tests := []struct {
		name     string
		in       Intent
		x, z, y  float32
		moving   bool
		anything bool
	}{
		{"idle", Intent{}, 0, 0, 0, false, false},
		{"left", Intent{Left: true}, 1, 0, 0, true, true},
		{"right", Intent{Right: true}, -1, 0, 0, true, true},
		{"forward", Intent{Forward: true}, 0, 1, 0, true, true},
		{"backward left", Intent{Backward: true, Left: true}, 1, -1, 0, true, true},
		{"opposing cancel", Intent{Left: true, Right: true, Forward: true, Backward: true}, 0, 0, 0, false, false},
		{"up only", Intent{Up: true}, 0, 0, 1, false, true},
		{"down only", Intent{Down: true}, 0, 0, -1, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, z := tt.in.Horizontal()
			if x != tt.x || z != tt.z {
				t.Errorf("Horizontal() = (%v, %v), want (%v, %v)", x, z, tt.x, tt.z)
			}
			if y := tt.in.Vertical(); y != tt.y {
				t.Errorf("Vertical() = %v, want %v", y, tt.y)
			}
			if tt.in.Moving() != tt.moving {
				t.Errorf("Moving() = %v, want %v", tt.in.Moving(), tt.moving)
			}
			if tt.in.Any() != tt.anything {
				t.Errorf("Any() = %v, want %v", tt.in.Any(), tt.anything)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{"forward", "backward", "left", "right", "up", "down"} {
		a, ok := ParseAction(name)
		if !ok || a.String() != name {
			t.Errorf("ParseAction(%q) = %v, %v", name, a, ok)
		}
	}
	if a, ok := ParseAction("leftward"); !ok || a != ActionLeft {
		t.Errorf("leftward alias not accepted")
	}
	if a, ok := ParseAction("rightward"); !ok || a != ActionRight {
		t.Errorf("rightward alias not accepted")
	}
	if _, ok := ParseAction("jump"); ok {
		t.Errorf("unknown action accepted")
	}
}

func TestKeyboardDefaultBindings(t *testing.T) {
	k := NewKeyboard()
	k.KeyDown(common.KeyW)
	k.KeyDown(common.KeyLeft)
	k.KeyDown(common.KeySpace)

	got := k.Intent()
	want := Intent{Forward: true, Left: true, Up: true}
	if got != want {
		t.Fatalf("Intent() = %+v, want %+v", got, want)
	}

	k.KeyUp(common.KeyW)
	if k.Intent().Forward {
		t.Error("forward still held after key up")
	}

	k.KeyDown(common.KeyLeftShift)
	if !k.Intent().Down {
		t.Error("shift should map to down")
	}

	k.Reset()
	if k.Intent().Any() {
		t.Error("intent not cleared by Reset")
	}
}

func TestKeyboardTapExpires(t *testing.T) {
	now := time.Unix(0, 0)
	k := NewKeyboard(
		WithHoldWindow(100*time.Millisecond),
		WithClock(func() time.Time { return now }),
	)

	k.Tap(common.KeyD)
	if !k.Intent().Right {
		t.Fatal("tapped key not held")
	}

	now = now.Add(80 * time.Millisecond)
	k.Tap(common.KeyD)
	now = now.Add(80 * time.Millisecond)
	if !k.Intent().Right {
		t.Fatal("repeat should extend the hold window")
	}

	now = now.Add(200 * time.Millisecond)
	if k.Intent().Right {
		t.Error("tap did not expire")
	}
}

func TestKeyboardUnboundKeysIgnored(t *testing.T) {
	k := NewKeyboard(WithBindings(map[uint32]Action{common.KeyK: ActionUp}))
	k.KeyDown(common.KeyW)
	k.KeyDown(common.KeyK)
	if got := k.Intent(); got != (Intent{Up: true}) {
		t.Errorf("unexpected intent %+v", got)
	}

	k.Bind(common.KeyW, ActionBackward)
	if !k.Intent().Backward {
		t.Error("rebinding not applied")
	}
}

func TestMerge(t *testing.T) {
	a := SourceFunc(func() Intent { return Intent{Forward: true} })
	b := SourceFunc(func() Intent { return Intent{Up: true} })
	got := Merge(a, nil, b).Intent()
	if got != (Intent{Forward: true, Up: true}) {
		t.Errorf("Merge intent = %+v", got)
	}
}
