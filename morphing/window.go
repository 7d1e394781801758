package morphing

import "math"

// Locate splits a normalized scroll value into the section being shown, the
// one it morphs toward and the fraction travelled through the current one.
func Locate(scroll float32, sections int) (current, next int, local float32) {
	if sections <= 0 {
		return 0, 0, 0
	}
	pos := clamp(scroll, 0, 1) * float32(sections)
	current = int(math.Floor(float64(pos)))
	if current > sections-1 {
		current = sections - 1
	}
	next = current + 1
	if next > sections-1 {
		next = sections - 1
	}
	local = clamp(pos-float32(current), 0, 1)
	return current, next, local
}

// HoldProgress keeps the shape locked until local passes threshold, then
// rescales the rest of the section to [0,1].
func HoldProgress(local, threshold float32) float32 {
	if threshold >= 1 || local < threshold {
		return 0
	}
	return clamp((local-threshold)/(1-threshold), 0, 1)
}

// Smoothstep eases p with zero slope at both ends.
func Smoothstep(p float32) float32 {
	p = clamp(p, 0, 1)
	return p * p * (3 - 2*p)
}
