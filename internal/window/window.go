// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window shows a shape in a gogpu window.
//
// Frames come from a [FrameSource] (GPU or CPU) and are presented through a
// ggcanvas. The window is event driven: it repaints when the system asks,
// and a new frame is rendered only after a resize.
package window

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shapedemo"
)

// view holds the per-window state written on the first draw and read on
// every repaint after it.
type view struct {
	shape   shapedemo.Shape
	cfg     shapedemo.Config
	backend Backend

	cache  *frameCache
	canvas *ggcanvas.Canvas
}

// Run opens the window and blocks until it is closed. Setup errors from the
// first draw (shader compile or link, attribute binding) close the window
// and are returned.
func Run(shape shapedemo.Shape, cfg shapedemo.Config, backend Backend) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := shapedemo.Logger()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	v := &view{shape: shape, cfg: cfg, backend: backend}
	var drawErr error

	app.OnDraw(func(dc *gogpu.Context) {
		if drawErr != nil {
			return
		}
		if err := v.draw(app.GPUContextProvider(), dc); err != nil {
			drawErr = err
			app.Quit()
		}
	})

	if onKey := keyHandler(cfg, app.Quit); onKey != nil {
		app.EventSource().OnKeyPress(onKey)
	}

	app.OnClose(v.close)

	log.Info("window: opening", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height,
		"shape", shape.Name(), "backend", backend.String())
	if err := app.Run(); err != nil {
		return fmt.Errorf("window: run: %w", err)
	}
	return drawErr
}

// keyHandler returns the key press callback that calls quit on Escape, or
// nil when cfg does not quit on Escape.
func keyHandler(cfg shapedemo.Config, quit func()) func(gpucontext.Key, gpucontext.Modifiers) {
	if !cfg.QuitOnEscape {
		return nil
	}
	return func(key gpucontext.Key, _ gpucontext.Modifiers) {
		shapedemo.Logger().Debug("window: key pressed", "key", key)
		if key == gpucontext.KeyEscape {
			quit()
		}
	}
}

// draw renders a frame for the current window size when needed and
// presents it.
func (v *view) draw(provider gpucontext.DeviceProvider, dc *gogpu.Context) error {
	w, h := dc.Width(), dc.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	if provider == nil {
		return nil
	}

	if v.cache == nil {
		src, err := NewSource(v.backend, provider, v.shape, v.cfg)
		if err != nil {
			return err
		}
		v.cache = &frameCache{source: src}
	}
	if v.canvas == nil {
		canvas, err := ggcanvas.New(provider, w, h)
		if err != nil {
			return fmt.Errorf("window: create canvas: %w", err)
		}
		v.canvas = canvas
	}

	frame, fresh, err := v.cache.get(w, h)
	if err != nil {
		return err
	}
	if fresh {
		if cw, ch := v.canvas.Size(); cw != w || ch != h {
			if err := v.canvas.Resize(w, h); err != nil {
				return fmt.Errorf("window: resize canvas: %w", err)
			}
		}
		buf := gg.ImageBufFromImage(frame)
		if err := v.canvas.Draw(func(cc *gg.Context) {
			cc.DrawImage(buf, 0, 0)
		}); err != nil {
			return fmt.Errorf("window: draw frame: %w", err)
		}
	}
	if err := v.canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
		return fmt.Errorf("window: present: %w", err)
	}
	return nil
}

// close releases the canvas and the frame source.
func (v *view) close() {
	if v.canvas != nil {
		if err := v.canvas.Close(); err != nil {
			shapedemo.Logger().Warn("window: close canvas", "err", err)
		}
		v.canvas = nil
	}
	if v.cache != nil {
		v.cache.source.Close()
		v.cache = nil
	}
}
