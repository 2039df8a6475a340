package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/island"
)

type recordingTarget struct {
	cmds []island.Command
}

func (r *recordingTarget) Submit(cmd island.Command) {
	r.cmds = append(r.cmds, cmd)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestWindowControlsSubmitOncePerPress(t *testing.T) {
	kb := input.NewKeyboard()
	target := &recordingTarget{}
	c := newWindowControls(kb, target)

	c.keyDown(common.Key2)
	c.keyDown(common.Key2)
	c.keyUp(common.Key2)
	c.keyDown(common.Key2)

	if len(target.cmds) != 2 {
		t.Fatalf("submitted %d commands, want 2", len(target.cmds))
	}
	if target.cmds[0].Destination != catalog.Projects {
		t.Errorf("destination = %q", target.cmds[0].Destination)
	}
	if kb.Intent().Any() {
		t.Error("navigation keys should not reach the keyboard")
	}
}

func TestWindowControlsHoldMovementKeys(t *testing.T) {
	kb := input.NewKeyboard()
	c := newWindowControls(kb, &recordingTarget{})

	c.keyDown(common.KeyW)
	if !kb.Intent().Forward {
		t.Fatal("W should hold forward")
	}
	c.keyUp(common.KeyW)
	if kb.Intent().Any() {
		t.Error("releasing W should clear the intent")
	}
}

func TestStatusTitle(t *testing.T) {
	got := statusTitle(island.Snapshot{Step: island.StepProjects, Collected: []int{0, 1, 2}, Total: 12, Progress: 25, CanSkip: true})
	want := "skyfolio | PROJECTS | 3/12 markers (25%) | K to skip"
	if got != want {
		t.Errorf("statusTitle = %q, want %q", got, want)
	}
}

func TestNewAppRejectsUnknownFrontend(t *testing.T) {
	if _, err := newApp(config{frontend: "vr"}, quietLogger()); err == nil {
		t.Error("expected an error for an unknown front-end")
	}
}

func TestHeadlessAppServesState(t *testing.T) {
	a, err := newApp(config{frontend: frontendHeadless}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer a.close()

	for i := 0; i < 3; i++ {
		a.tick(1.0 / 60)
	}
	a.frame(1.0 / 30)

	rec := httptest.NewRecorder()
	a.mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("state is not JSON: %v", err)
	}
	if body["type"] != "frame" {
		t.Errorf("type = %v, want frame", body["type"])
	}

	rec = httptest.NewRecorder()
	a.mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "ok") {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestOpenLoggerQuietDiscards(t *testing.T) {
	l, closeLog, err := openLogger("", true)
	if err != nil {
		t.Fatal(err)
	}
	defer closeLog()
	if l.Writer() != io.Discard {
		t.Error("quiet logger should discard output")
	}
}
