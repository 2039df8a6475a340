package physics

import (
	"testing"

	"github.com/Carmen-Shannon/skyfolio/common"
)

func TestIntegrateAppliesVelocityAndDamping(t *testing.T) {
	b := NewBody(WithLinearDamping(1))
	b.SetLinearVelocity(common.V3(10, 0, 0), true)

	b.Integrate(0.5, common.V3(0, -9.81, 0))

	// v = 10 / (1 + 0.5) and gravity scale defaults to 0
	v := b.LinearVelocity()
	if !v.Near(common.V3(10.0/1.5, 0, 0), 1e-4) {
		t.Errorf("unexpected velocity %v", v)
	}
	p := b.Translation()
	if !p.Near(common.V3(10.0/1.5*0.5, 0, 0), 1e-4) {
		t.Errorf("unexpected position %v", p)
	}
}

func TestGravityScale(t *testing.T) {
	b := NewBody(WithGravityScale(1))
	b.Integrate(1, common.V3(0, -10, 0))
	if got := b.LinearVelocity()[1]; got != -10 {
		t.Errorf("expected vy -10, got %v", got)
	}
}

func TestBodySleepsAndWakes(t *testing.T) {
	b := NewBody(WithPosition(common.V3(1, 2, 3)))
	b.Integrate(1.0/60.0, common.Vec3{})
	if !b.Sleeping() {
		t.Fatal("expected resting body to fall asleep")
	}

	b.SetLinearVelocity(common.V3(0, 6, 0), true)
	if b.Sleeping() {
		t.Fatal("expected wake on velocity change")
	}
	b.Integrate(0.5, common.Vec3{})
	if got := b.Translation(); !got.Near(common.V3(1, 5, 3), 1e-5) {
		t.Errorf("unexpected position %v", got)
	}
}

func TestCapsuleCollider(t *testing.T) {
	b := NewBody(
		WithPosition(common.V3(0, 10, 0)),
		WithCapsuleCollider(1.8, 1.8, common.V3(0, 3, 0)),
	)
	box := b.Collider()
	if box.Center != common.V3(0, 13, 0) {
		t.Errorf("unexpected center %v", box.Center)
	}
	if box.Size != common.V3(3.6, 7.2, 3.6) {
		t.Errorf("unexpected size %v", box.Size)
	}
}

func TestSensorEnterExitTransitions(t *testing.T) {
	b := NewBody(WithName("character"), WithBoxCollider(common.V3(1, 1, 1), common.Vec3{}))
	w := NewWorld(WithBody(b))

	var enters, exits []string
	w.AddSensor("zone",
		common.NewAABB(common.V3(10, 0, 0), common.V3(4, 4, 4)),
		func(other string) { enters = append(enters, other) },
		func(other string) { exits = append(exits, other) },
	)

	w.Step(0.1)
	if len(enters) != 0 {
		t.Fatalf("unexpected enter while outside: %v", enters)
	}

	b.SetTranslation(common.V3(9, 0, 0), true)
	w.Step(0.1)
	w.Step(0.1)
	if len(enters) != 1 || enters[0] != "character" {
		t.Fatalf("expected exactly one enter, got %v", enters)
	}

	b.SetTranslation(common.V3(30, 0, 0), true)
	w.Step(0.1)
	w.Step(0.1)
	if len(exits) != 1 || exits[0] != "character" {
		t.Fatalf("expected exactly one exit, got %v", exits)
	}
}

func TestSensorCallbackMayRemoveSensor(t *testing.T) {
	b := NewBody(WithName("character"))
	w := NewWorld(WithBody(b))

	hits := 0
	w.AddSensor("coin", common.NewAABB(common.Vec3{}, common.V3(2, 2, 2)), func(string) {
		hits++
		w.RemoveSensor("coin")
	}, nil)

	w.Step(0.1)
	w.Step(0.1)
	if hits != 1 {
		t.Errorf("expected one hit, got %d", hits)
	}
	if len(w.Sensors()) != 0 {
		t.Errorf("expected sensor removed, still have %v", w.Sensors())
	}
}
