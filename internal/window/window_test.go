package window

import (
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shapedemo"
)

func TestKeyHandler(t *testing.T) {
	quits := 0
	quit := func() { quits++ }

	cfg := shapedemo.DefaultConfig()
	cfg.QuitOnEscape = true
	onKey := keyHandler(cfg, quit)
	if onKey == nil {
		t.Fatal("expected a handler when QuitOnEscape is set")
	}

	onKey(gpucontext.KeySpace, 0)
	onKey(gpucontext.KeyQ, 0)
	if quits != 0 {
		t.Fatalf("quit called %d times for non-Escape keys", quits)
	}

	onKey(gpucontext.KeyEscape, 0)
	if quits != 1 {
		t.Errorf("quit called %d times after Escape, want 1", quits)
	}
}

func TestKeyHandlerDisabled(t *testing.T) {
	if keyHandler(shapedemo.DefaultConfig(), func() { t.Error("quit called") }) != nil {
		t.Error("expected no handler when QuitOnEscape is off")
	}
}
