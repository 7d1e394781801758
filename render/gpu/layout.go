package gpu

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float":
		return wgpu.VertexFormatFloat32
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

// vertexLayout builds a buffer layout from the `gpu:"layout"` tagged fields
// of a struct. Untagged fields still advance the offset.
func vertexLayout(vertexType any, step wgpu.VertexStepMode) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("Vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("gpu") != "layout" {
			continue
		}
		location, err := strconv.Atoi(field.Tag.Get("location"))
		if err != nil {
			panic(err)
		}
		attributes = append(attributes, wgpu.VertexAttribute{
			ShaderLocation: uint32(location),
			Offset:         uint64(field.Offset),
			Format:         parseFormat(field.Tag.Get("format")),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(t.Size()),
		StepMode:    step,
		Attributes:  attributes,
	}
}

// bytesOf views a slice's backing array as bytes.
func bytesOf[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
