package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan backend via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/shapedemo"
)

// ErrNoAdapter is returned when the backend exposes no GPU adapter.
var ErrNoAdapter = errors.New("gpu: no adapters found")

// InstanceCreator creates a HAL instance. Backends returned by
// hal.GetBackend and the noop backend used in tests satisfy it.
type InstanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Device is an opened GPU device and its queue.
type Device struct {
	Device hal.Device
	Queue  hal.Queue
	Name   string

	instance hal.Instance
	// shared devices belong to the host and are not destroyed by Close.
	shared bool
	// spirv selects SPIR-V shader modules instead of WGSL text.
	spirv bool
}

// OpenDevice opens the first discrete or integrated GPU through Vulkan.
func OpenDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("gpu: vulkan backend not available")
	}
	d, err := Open(backend)
	if err != nil {
		return nil, err
	}
	d.spirv = true
	return d, nil
}

// Open creates an instance on backend and opens its preferred adapter.
func Open(backend InstanceCreator) (*Device, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}
	shapedemo.Logger().Info("gpu: adapter selected", "name", selected.Info.Name)

	return &Device{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Name:     selected.Info.Name,
		instance: instance,
	}, nil
}

// FromProvider shares the device of a host such as a gogpu window. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func FromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	return &Device{Device: device, Queue: queue, Name: "shared", shared: true}, nil
}

// Close destroys the device and instance unless they are shared.
// Safe to call more than once.
func (d *Device) Close() {
	if d.shared {
		d.Device = nil
		d.Queue = nil
		return
	}
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	d.Queue = nil
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
