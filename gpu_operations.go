package morphscape

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState owns the GLFW window. Width and Height are the framebuffer
// size in pixels; Viewport carries the logical size.
type WindowState struct {
	windowGlfw *glfw.Window
	Width      int
	Height     int
	Title      string
}

type GpuState struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
}

func createWindowState(width, height int, title string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // no OpenGL context, wgpu owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	fw, fh := win.GetFramebufferSize()
	return &WindowState{
		windowGlfw: win,
		Width:      fw,
		Height:     fh,
		Title:      title,
	}, nil
}

// ContentScale is the ratio of framebuffer to logical pixels.
func (s *WindowState) ContentScale() float32 {
	w, _ := s.windowGlfw.GetSize()
	if w <= 0 {
		return 1
	}
	return float32(s.Width) / float32(w)
}

func (s *WindowState) destroy() {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
		glfw.Terminate()
	}
}

func createGpuState(s *WindowState) (*GpuState, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		device.Release()
		adapter.Release()
		surface.Release()
		return nil, fmt.Errorf("surface reports no formats")
	}
	config := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      surfaceFormat(caps.Formats),
		Width:       uint32(max(s.Width, 1)),
		Height:      uint32(max(s.Height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &config)

	return &GpuState{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         device.GetQueue(),
		surfaceConfig: &config,
	}, nil
}

// surfaceFormat picks a non-sRGB swapchain format. Colors are already
// encoded by the composite pass, so an sRGB surface would encode them twice.
func surfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8Unorm} {
		if slices.Contains(formats, f) {
			return f
		}
	}
	return formats[0]
}

// resize reconfigures the swapchain. Zero sizes (minimized window) are
// ignored.
func (g *GpuState) resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if uint32(width) == g.surfaceConfig.Width && uint32(height) == g.surfaceConfig.Height {
		return false
	}
	g.surfaceConfig.Width, g.surfaceConfig.Height = uint32(width), uint32(height)
	g.surface.Configure(g.adapter, g.device, g.surfaceConfig)
	return true
}

func (g *GpuState) release() {
	if g.queue != nil {
		g.queue.Release()
	}
	if g.device != nil {
		g.device.Release()
	}
	if g.adapter != nil {
		g.adapter.Release()
	}
	if g.surface != nil {
		g.surface.Release()
	}
	*g = GpuState{}
}
