package shaders

import (
	_ "embed"
)

//go:embed points.wgsl
var PointsWGSL string

//go:embed grid.wgsl
var GridWGSL string

//go:embed fullscreen.wgsl
var FullscreenWGSL string

//go:embed bright.wgsl
var BrightWGSL string

//go:embed blur.wgsl
var BlurWGSL string

//go:embed composite.wgsl
var CompositeWGSL string

// Post returns a post-processing fragment shader prefixed with the shared
// fullscreen vertex stage.
func Post(fragment string) string {
	return FullscreenWGSL + "\n" + fragment
}
