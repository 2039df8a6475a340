package window

import "testing"

func TestSetTitleIsAppliedOnce(t *testing.T) {
	w := &engineWindow{}
	if _, ok := w.takeTitle(); ok {
		t.Fatal("no title should be pending initially")
	}

	w.SetTitle("skyfolio | IDLE")
	w.SetTitle("skyfolio | PROJECTS")
	title, ok := w.takeTitle()
	if !ok || title != "skyfolio | PROJECTS" {
		t.Fatalf("takeTitle = %q, %v", title, ok)
	}
	if _, ok := w.takeTitle(); ok {
		t.Error("title should only be applied once")
	}

	w.SetTitle("skyfolio | PROJECTS")
	if _, ok := w.takeTitle(); ok {
		t.Error("an unchanged title should not be reapplied")
	}
}

func TestUnspawnedWindowIsNotRunning(t *testing.T) {
	w := &engineWindow{}
	if w.IsRunning() {
		t.Error("a window without a platform handle should not run")
	}
	if err := w.Close(); err == nil {
		t.Error("closing an unspawned window should fail")
	}
}

func TestBuilderOptions(t *testing.T) {
	var downs, ups []uint32
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("island"),
		WithSize(800, 300),
		WithSizeLimits(100, 50, 1000, 500),
		WithKeyCallbacks(
			func(k uint32) { downs = append(downs, k) },
			func(k uint32) { ups = append(ups, k) },
		),
	} {
		opt(w)
	}
	if w.title != "island" || w.width != 800 || w.height != 300 {
		t.Errorf("title/size = %q %dx%d", w.title, w.width, w.height)
	}
	if w.minWidth != 100 || w.minHeight != 50 || w.maxWidth != 1000 || w.maxHeight != 500 {
		t.Errorf("limits = %d %d %d %d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
	w.onKeyDown(87)
	w.onKeyUp(87)
	if len(downs) != 1 || len(ups) != 1 {
		t.Errorf("callbacks not wired: %v %v", downs, ups)
	}
}
