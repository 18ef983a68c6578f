package window

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/shapedemo"
	"github.com/gogpu/shapedemo/internal/gpu"
	"github.com/gogpu/shapedemo/internal/soft"
)

// FrameSource renders frames of a shape at a requested size.
type FrameSource interface {
	Render(w, h int) (*image.RGBA, error)
	Close()
}

// Backend selects how frames are rendered.
type Backend int

const (
	// BackendAuto uses the GPU and falls back to the CPU when no device
	// can be opened.
	BackendAuto Backend = iota
	// BackendGPU requires a GPU device.
	BackendGPU
	// BackendCPU rasterizes with gg on the CPU.
	BackendCPU
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendGPU:
		return "gpu"
	case BackendCPU:
		return "cpu"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend parses auto, gpu or cpu.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return BackendAuto, nil
	case "gpu":
		return BackendGPU, nil
	case "cpu":
		return BackendCPU, nil
	default:
		return 0, fmt.Errorf("window: unknown backend %q (want auto, gpu or cpu)", s)
	}
}

// gpuSource owns the device behind a GPU renderer.
type gpuSource struct {
	*gpu.Renderer
	dev *gpu.Device
}

func (s *gpuSource) Close() {
	s.Renderer.Close()
	s.dev.Close()
}

// openDevice shares the host device when provider exposes one and opens a
// dedicated device otherwise.
var openDevice = func(provider any) (*gpu.Device, error) {
	if provider != nil {
		if d, err := gpu.FromProvider(provider); err == nil {
			return d, nil
		}
	}
	return gpu.OpenDevice()
}

// NewSource creates a frame source for backend. provider may be nil.
//
// Only device acquisition falls back to the CPU in auto mode. Shader
// compile, link and attribute errors are returned as is.
func NewSource(backend Backend, provider any, shape shapedemo.Shape, cfg shapedemo.Config) (FrameSource, error) {
	log := shapedemo.Logger()
	if backend == BackendCPU {
		return newSoft(shape, cfg)
	}

	dev, err := openDevice(provider)
	if err != nil {
		if backend == BackendGPU {
			return nil, err
		}
		log.Warn("window: GPU unavailable, using CPU renderer", "err", err)
		return newSoft(shape, cfg)
	}

	r, err := gpu.NewRenderer(dev, shape, cfg)
	if err != nil {
		dev.Close()
		return nil, err
	}
	log.Info("window: GPU renderer ready", "device", dev.Name)
	return &gpuSource{Renderer: r, dev: dev}, nil
}

func newSoft(shape shapedemo.Shape, cfg shapedemo.Config) (FrameSource, error) {
	r, err := soft.NewRenderer(shape, cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// frameCache re-renders only when the requested size changes. The shape
// is static, so a frame stays valid until the viewport changes.
type frameCache struct {
	source FrameSource
	frame  *image.RGBA
	w, h   int
}

// get returns the frame for w x h and whether it was rendered by this call.
func (c *frameCache) get(w, h int) (*image.RGBA, bool, error) {
	if c.frame != nil && c.w == w && c.h == h {
		return c.frame, false, nil
	}
	frame, err := c.source.Render(w, h)
	if err != nil {
		return nil, false, err
	}
	c.frame, c.w, c.h = frame, w, h
	shapedemo.Logger().Debug("window: frame rendered", "width", w, "height", h)
	return frame, true, nil
}
