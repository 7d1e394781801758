package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/vektorsolutions/morphscape/render/core"
)

// Render draws f into out, which must match the renderer's output format.
func (r *Renderer) Render(f *core.Frame, out *wgpu.TextureView) error {
	if err := r.Resize(f.Width, f.Height); err != nil {
		return err
	}
	r.writeUniforms(f)
	if err := r.uploadInstances(f.Instances); err != nil {
		return err
	}
	if err := r.uploadGrid(f.Grid); err != nil {
		return err
	}

	encoder, err := r.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("CreateCommandEncoder failed: %w", err)
	}
	defer encoder.Release()

	if err := r.scenePass(encoder, f); err != nil {
		return err
	}
	if f.PostFX.Enabled && f.PostFX.Bloom.Enabled {
		for i := range r.levels {
			if err := r.bloomPasses(encoder, &r.levels[i]); err != nil {
				return err
			}
		}
	}
	if err := r.compositePass(encoder, out); err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("Encoder Finish failed: %w", err)
	}
	defer cmd.Release()
	r.Queue.Submit(cmd)
	return nil
}

func (r *Renderer) writeUniforms(f *core.Frame) {
	scene := []sceneUniforms{{
		ViewProj: f.Camera.ViewProjection(f.Aspect()),
		View:     f.Camera.View(),
		FogColor: [4]float32{f.Fog.Color[0], f.Fog.Color[1], f.Fog.Color[2], 1},
		Params:   [4]float32{f.Fog.Near, f.Fog.Far, f.Aspect(), core.AlphaTest},
	}}
	r.Queue.WriteBuffer(r.sceneBuf, 0, bytesOf(scene))

	var post postUniforms
	fx := f.PostFX
	if fx.Enabled {
		b := fx.Bloom
		if b.Enabled && len(r.levels) > 0 {
			mip := float32(0)
			if len(r.levels) > 1 {
				mip = 1
			}
			post.Bloom = [4]float32{b.Threshold, b.Smoothing, b.Intensity, mip}
		}
		post.Effects = [4]float32{fx.ChromaticAberration, fx.Vignette.Offset, fx.Vignette.Darkness, 1}
	}
	r.Queue.WriteBuffer(r.postBuf, 0, bytesOf([]postUniforms{post}))
}

func (r *Renderer) uploadInstances(instances []core.ParticleInstance) error {
	if len(instances) == 0 {
		return nil
	}
	if r.instanceBuf == nil || r.instanceCap < len(instances) {
		if r.instanceBuf != nil {
			r.instanceBuf.Release()
		}
		r.instanceCap = len(instances) + 1024
		var err error
		r.instanceBuf, err = r.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "PointInstanceBuffer",
			Size:  uint64(r.instanceCap) * uint64(unsafe.Sizeof(core.ParticleInstance{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			r.instanceBuf = nil
			return fmt.Errorf("instance buffer: %w", err)
		}
	}
	r.Queue.WriteBuffer(r.instanceBuf, 0, bytesOf(instances))
	return nil
}

func (r *Renderer) uploadGrid(lines []core.GridLine) error {
	r.gridVerts = r.gridVerts[:0]
	for _, l := range lines {
		r.gridVerts = append(r.gridVerts,
			GridVertex{Pos: l.A, Color: l.Color},
			GridVertex{Pos: l.B, Color: l.Color},
		)
	}
	if len(r.gridVerts) == 0 {
		return nil
	}
	if r.gridBuf == nil || r.gridCap < len(r.gridVerts) {
		if r.gridBuf != nil {
			r.gridBuf.Release()
		}
		r.gridCap = len(r.gridVerts)
		var err error
		r.gridBuf, err = r.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "GridVertexBuffer",
			Size:  uint64(len(bytesOf(r.gridVerts))),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			r.gridBuf = nil
			return fmt.Errorf("grid buffer: %w", err)
		}
	}
	r.Queue.WriteBuffer(r.gridBuf, 0, bytesOf(r.gridVerts))
	return nil
}

func (r *Renderer) scenePass(encoder *wgpu.CommandEncoder, f *core.Frame) error {
	attachment := wgpu.RenderPassColorAttachment{
		View:    r.hdr.view,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: float64(f.Clear[0]),
			G: float64(f.Clear[1]),
			B: float64(f.Clear[2]),
			A: 1,
		},
	}
	if r.samples > 1 {
		attachment.View = r.msaa.view
		attachment.ResolveTarget = r.hdr.view
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "ScenePass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})
	if len(r.gridVerts) > 0 {
		pass.SetPipeline(r.grid)
		pass.SetBindGroup(0, r.gridBG, nil)
		pass.SetVertexBuffer(0, r.gridBuf, 0, wgpu.WholeSize)
		pass.Draw(uint32(len(r.gridVerts)), 1, 0, 0)
	}
	if n := len(f.Instances); n > 0 {
		pass.SetPipeline(r.points)
		pass.SetBindGroup(0, r.pointsBG, nil)
		pass.SetBindGroup(1, r.spriteBG, nil)
		pass.SetVertexBuffer(0, r.instanceBuf, 0, wgpu.WholeSize)
		pass.Draw(6, uint32(n), 0, 0)
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("scene pass End failed: %w", err)
	}
	return nil
}

func (r *Renderer) bloomPasses(encoder *wgpu.CommandEncoder, lvl *bloomLevel) error {
	steps := []struct {
		label    string
		pipeline *wgpu.RenderPipeline
		bind     *wgpu.BindGroup
		dst      *wgpu.TextureView
	}{
		{"BrightPass", r.bright, lvl.brightBG, lvl.a.view},
		{"BlurHPass", r.blur, lvl.blurHBG, lvl.b.view},
		{"BlurVPass", r.blur, lvl.blurVBG, lvl.a.view},
	}
	for _, s := range steps {
		if err := fullscreenPass(encoder, s.label, s.pipeline, s.bind, s.dst); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) compositePass(encoder *wgpu.CommandEncoder, out *wgpu.TextureView) error {
	return fullscreenPass(encoder, "CompositePass", r.composite, r.compositeB, out)
}

func fullscreenPass(encoder *wgpu.CommandEncoder, label string, p *wgpu.RenderPipeline, bg *wgpu.BindGroup, dst *wgpu.TextureView) error {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       dst,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(p)
	pass.SetBindGroup(0, bg, nil)
	pass.Draw(3, 1, 0, 0)
	if err := pass.End(); err != nil {
		return fmt.Errorf("%s End failed: %w", label, err)
	}
	return nil
}
