package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
)

type RegionKind int

const (
	RegionOutline RegionKind = iota
	RegionFill
	RegionRadial
	RegionCustom
)

func (k RegionKind) String() string {
	switch k {
	case RegionOutline:
		return "outline"
	case RegionFill:
		return "fill"
	case RegionRadial:
		return "radial"
	default:
		return "custom"
	}
}

// Slot identifies one particle inside a region. Group is the sub-shape the
// particle belongs to, Index its position inside that group and T = Index/Count.
type Slot struct {
	Group int
	Index int
	Count int
	T     float32
}

type Sampler func(s Slot) mgl32.Vec3

// Region is a contiguous share of the particle budget swept by one sampler.
// Percent is an integer share of the budget; Groups splits that share evenly
// between sub-shapes (0 or 1 means a single group).
type Region struct {
	Name    string
	Kind    RegionKind
	Percent int
	Groups  int
	Sample  Sampler
}

// Size returns how many slots the region takes out of a budget of n.
func (r Region) Size(n int) int {
	total := n * r.Percent / 100
	groups := r.groups()
	return groups * (total / groups)
}

func (r Region) groups() int {
	if r.Groups < 1 {
		return 1
	}
	return r.Groups
}

// Allocate sweeps every region in order into a fresh set of n points. Slots a
// region cannot fill are left to the next region; any tail left over once all
// regions are written is set to the origin.
func Allocate(n int, regions []Region) ParticleSet {
	out := NewParticleSet(n)
	idx := 0
	for _, r := range regions {
		groups := r.groups()
		perGroup := (n * r.Percent / 100) / groups
		if perGroup == 0 {
			continue
		}
		for g := 0; g < groups && idx < n; g++ {
			for i := 0; i < perGroup && idx < n; i++ {
				out[idx] = r.Sample(Slot{
					Group: g,
					Index: i,
					Count: perGroup,
					T:     float32(i) / float32(perGroup),
				})
				idx++
			}
		}
	}
	for ; idx < n; idx++ {
		out[idx] = mgl32.Vec3{}
	}
	return out
}

// Filled reports how many leading slots Allocate writes from regions for a
// budget of n; the remainder is origin padding.
func Filled(n int, regions []Region) int {
	total := 0
	for _, r := range regions {
		total += r.Size(n)
	}
	if total > n {
		return n
	}
	return total
}
