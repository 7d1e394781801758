// Package gpu draws point cloud frames with webgpu: a scene pass into an
// HDR target, an optional bloom chain and a composite pass to the output.
package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vektorsolutions/morphscape/render/core"
	"github.com/vektorsolutions/morphscape/render/shaders"
)

// MaxSamples is the highest MSAA count requested from the device. WebGPU
// only guarantees 1 and 4.
const MaxSamples = 4

// sceneUniforms matches Scene in points.wgsl and grid.wgsl.
type sceneUniforms struct {
	ViewProj mgl32.Mat4
	View     mgl32.Mat4
	FogColor [4]float32
	Params   [4]float32
}

// postUniforms matches Post in fullscreen.wgsl.
type postUniforms struct {
	Bloom   [4]float32
	Effects [4]float32
	Texel   [4]float32
}

type Options struct {
	Samples     int
	BloomHeight int
	MipBlur     bool
}

type target struct {
	tex    *wgpu.Texture
	view   *wgpu.TextureView
	width  int
	height int
}

func (t *target) release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

type bloomLevel struct {
	a, b          target
	blurH, blurV  *wgpu.Buffer
	brightBG      *wgpu.BindGroup
	blurHBG       *wgpu.BindGroup
	blurVBG       *wgpu.BindGroup
}

type Renderer struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
	Format wgpu.TextureFormat

	width, height int
	samples       uint32
	opts          Options

	points    *wgpu.RenderPipeline
	grid      *wgpu.RenderPipeline
	bright    *wgpu.RenderPipeline
	blur      *wgpu.RenderPipeline
	composite *wgpu.RenderPipeline

	sampler    *wgpu.Sampler
	sprite     target
	sceneBuf   *wgpu.Buffer
	postBuf    *wgpu.Buffer
	pointsBG   *wgpu.BindGroup
	spriteBG   *wgpu.BindGroup
	gridBG     *wgpu.BindGroup
	compositeB *wgpu.BindGroup

	instanceBuf *wgpu.Buffer
	instanceCap int
	gridBuf     *wgpu.Buffer
	gridCap     int
	gridVerts   []GridVertex

	msaa   target
	hdr    target
	black  target
	levels []bloomLevel
}

// NewRenderer creates pipelines and targets for a width x height output in
// format.
func NewRenderer(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, width, height int, opts Options) (*Renderer, error) {
	samples := uint32(1)
	if opts.Samples > 1 {
		samples = MaxSamples
	}
	r := &Renderer{
		Device:  device,
		Queue:   queue,
		Format:  format,
		samples: samples,
		opts:    opts,
	}

	var err error
	if r.points, err = newPointsPipeline(device, samples); err != nil {
		return nil, fmt.Errorf("points pipeline: %w", err)
	}
	if r.grid, err = newGridPipeline(device, samples); err != nil {
		return nil, fmt.Errorf("grid pipeline: %w", err)
	}
	if r.bright, err = newPostPipeline(device, "Bright", shaders.BrightWGSL, HDRFormat); err != nil {
		return nil, fmt.Errorf("bright pipeline: %w", err)
	}
	if r.blur, err = newPostPipeline(device, "Blur", shaders.BlurWGSL, HDRFormat); err != nil {
		return nil, fmt.Errorf("blur pipeline: %w", err)
	}
	if r.composite, err = newPostPipeline(device, "Composite", shaders.CompositeWGSL, format); err != nil {
		return nil, fmt.Errorf("composite pipeline: %w", err)
	}

	r.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	if r.sceneBuf, err = r.uniformBuffer("SceneUniforms", unsafe.Sizeof(sceneUniforms{})); err != nil {
		return nil, err
	}
	if r.postBuf, err = r.uniformBuffer("PostUniforms", unsafe.Sizeof(postUniforms{})); err != nil {
		return nil, err
	}
	if err := r.uploadSprite(); err != nil {
		return nil, err
	}
	if r.black, err = r.newTarget("Black", 1, 1, 1, HDRFormat); err != nil {
		return nil, err
	}

	r.pointsBG, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "PointsSceneBG",
		Layout:  r.points.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: r.sceneBuf, Size: wgpu.WholeSize}},
	})
	if err != nil {
		return nil, err
	}
	r.spriteBG, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "PointsSpriteBG",
		Layout: r.points.GetBindGroupLayout(1),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: r.sprite.view},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		return nil, err
	}
	r.gridBG, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "GridSceneBG",
		Layout:  r.grid.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: r.sceneBuf, Size: wgpu.WholeSize}},
	})
	if err != nil {
		return nil, err
	}

	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) uniformBuffer(label string, size uintptr) (*wgpu.Buffer, error) {
	return r.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
}

func (r *Renderer) newTarget(label string, w, h int, samples uint32, format wgpu.TextureFormat) (target, error) {
	usage := wgpu.TextureUsageRenderAttachment
	if samples == 1 {
		usage |= wgpu.TextureUsageTextureBinding
	}
	tex, err := r.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return target{}, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return target{}, err
	}
	return target{tex: tex, view: view, width: w, height: h}, nil
}

func (r *Renderer) uploadSprite() error {
	mask := core.SpriteMask(core.SpriteSize)
	size := wgpu.Extent3D{Width: core.SpriteSize, Height: core.SpriteSize, DepthOrArrayLayers: 1}
	tex, err := r.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Sprite",
		Size:          size,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}
	r.Queue.WriteTexture(tex.AsImageCopy(), mask.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(mask.Stride),
		RowsPerImage: core.SpriteSize,
	}, &size)
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	r.sprite = target{tex: tex, view: view, width: core.SpriteSize, height: core.SpriteSize}
	return nil
}

// Resize recreates the size-dependent targets and bind groups.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if width == r.width && height == r.height && r.hdr.view != nil {
		return nil
	}
	r.releaseTargets()
	r.width, r.height = width, height

	var err error
	if r.hdr, err = r.newTarget("SceneHDR", width, height, 1, HDRFormat); err != nil {
		return err
	}
	if r.samples > 1 {
		if r.msaa, err = r.newTarget("SceneMSAA", width, height, r.samples, HDRFormat); err != nil {
			return err
		}
	}

	heights := bloomHeights(r.opts, height)
	for i, lh := range heights {
		lw := max(1, width*lh/height)
		lvl, err := r.newBloomLevel(i, lw, lh)
		if err != nil {
			return err
		}
		r.levels = append(r.levels, lvl)
	}

	bloomView, mipView := r.black.view, r.black.view
	if len(r.levels) > 0 {
		bloomView = r.levels[0].a.view
	}
	if len(r.levels) > 1 {
		mipView = r.levels[1].a.view
	}
	r.compositeB, err = r.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "CompositeBG",
		Layout: r.composite.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: r.hdr.view},
			{Binding: 1, TextureView: bloomView},
			{Binding: 2, TextureView: mipView},
			{Binding: 3, Sampler: r.sampler},
			{Binding: 4, Buffer: r.postBuf, Size: wgpu.WholeSize},
		},
	})
	return err
}

// bloomHeights lists the blur target heights: the bloom resolution and,
// with mip blur, half of it.
func bloomHeights(opts Options, height int) []int {
	h := opts.BloomHeight
	if h <= 0 {
		return nil
	}
	h = min(h, height)
	out := []int{h}
	if opts.MipBlur && h >= 4 {
		out = append(out, h/2)
	}
	return out
}

func (r *Renderer) newBloomLevel(i, w, h int) (bloomLevel, error) {
	var lvl bloomLevel
	var err error
	if lvl.a, err = r.newTarget(fmt.Sprintf("BloomA%d", i), w, h, 1, HDRFormat); err != nil {
		return lvl, err
	}
	if lvl.b, err = r.newTarget(fmt.Sprintf("BloomB%d", i), w, h, 1, HDRFormat); err != nil {
		return lvl, err
	}
	if lvl.blurH, err = r.uniformBuffer("BlurH", unsafe.Sizeof(postUniforms{})); err != nil {
		return lvl, err
	}
	if lvl.blurV, err = r.uniformBuffer("BlurV", unsafe.Sizeof(postUniforms{})); err != nil {
		return lvl, err
	}
	texel := [2]float32{1 / float32(w), 1 / float32(h)}
	h1 := []postUniforms{{Texel: [4]float32{texel[0], texel[1], 1, 0}}}
	v1 := []postUniforms{{Texel: [4]float32{texel[0], texel[1], 0, 1}}}
	r.Queue.WriteBuffer(lvl.blurH, 0, bytesOf(h1))
	r.Queue.WriteBuffer(lvl.blurV, 0, bytesOf(v1))

	bind := func(label string, p *wgpu.RenderPipeline, src *wgpu.TextureView, buf *wgpu.Buffer) (*wgpu.BindGroup, error) {
		return r.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  label,
			Layout: p.GetBindGroupLayout(0),
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: src},
				{Binding: 1, Sampler: r.sampler},
				{Binding: 2, Buffer: buf, Size: wgpu.WholeSize},
			},
		})
	}
	if lvl.brightBG, err = bind("BrightBG", r.bright, r.hdr.view, r.postBuf); err != nil {
		return lvl, err
	}
	if lvl.blurHBG, err = bind("BlurHBG", r.blur, lvl.a.view, lvl.blurH); err != nil {
		return lvl, err
	}
	if lvl.blurVBG, err = bind("BlurVBG", r.blur, lvl.b.view, lvl.blurV); err != nil {
		return lvl, err
	}
	return lvl, nil
}

func (r *Renderer) releaseTargets() {
	if r.compositeB != nil {
		r.compositeB.Release()
		r.compositeB = nil
	}
	for i := range r.levels {
		lvl := &r.levels[i]
		for _, bg := range []*wgpu.BindGroup{lvl.brightBG, lvl.blurHBG, lvl.blurVBG} {
			if bg != nil {
				bg.Release()
			}
		}
		for _, b := range []*wgpu.Buffer{lvl.blurH, lvl.blurV} {
			if b != nil {
				b.Release()
			}
		}
		lvl.a.release()
		lvl.b.release()
	}
	r.levels = r.levels[:0]
	r.msaa.release()
	r.hdr.release()
}

// Release frees every GPU object owned by the renderer.
func (r *Renderer) Release() {
	r.releaseTargets()
	r.black.release()
	r.sprite.release()
	for _, bg := range []*wgpu.BindGroup{r.pointsBG, r.spriteBG, r.gridBG} {
		if bg != nil {
			bg.Release()
		}
	}
	for _, b := range []*wgpu.Buffer{r.sceneBuf, r.postBuf, r.instanceBuf, r.gridBuf} {
		if b != nil {
			b.Release()
		}
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	for _, p := range []*wgpu.RenderPipeline{r.points, r.grid, r.bright, r.blur, r.composite} {
		if p != nil {
			p.Release()
		}
	}
}
