package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/vektorsolutions/morphscape/render/core"
	"github.com/vektorsolutions/morphscape/render/shaders"
)

// HDRFormat is the format of the offscreen scene and bloom targets.
const HDRFormat = wgpu.TextureFormatRGBA16Float

// GridVertex matches VsIn in grid.wgsl.
type GridVertex struct {
	Pos   [3]float32 `gpu:"layout" format:"float3" location:"0"`
	Color [3]float32 `gpu:"layout" format:"float3" location:"1"`
}

var (
	additiveBlend = &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOne,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
		},
	}
)

func shaderModule(device *wgpu.Device, label, code string) (*wgpu.ShaderModule, error) {
	return device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
}

func newPointsPipeline(device *wgpu.Device, samples uint32) (*wgpu.RenderPipeline, error) {
	module, err := shaderModule(device, "PointsShader", shaders.PointsWGSL)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "PointsPipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				vertexLayout(core.ParticleInstance{}, wgpu.VertexStepModeInstance),
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    HDRFormat,
				Blend:     additiveBlend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	})
}

func newGridPipeline(device *wgpu.Device, samples uint32) (*wgpu.RenderPipeline, error) {
	module, err := shaderModule(device, "GridShader", shaders.GridWGSL)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "GridPipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				vertexLayout(GridVertex{}, wgpu.VertexStepModeVertex),
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    HDRFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	})
}

// newPostPipeline builds a fullscreen-triangle pipeline for a post shader.
func newPostPipeline(device *wgpu.Device, label, fragment string, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	module, err := shaderModule(device, label+"Shader", shaders.Post(fragment))
	if err != nil {
		return nil, err
	}
	defer module.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label + "Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}
