package shapes

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnknownShape = errors.New("shapes: unknown shape kind")
	ErrBudget       = errors.New("shapes: invalid particle budget")
)

const DefaultSphereRadius = 1.8

var registry = map[string]func() []Region{
	"rack":      RackRegions,
	"briefcase": BriefcaseRegions,
	"laptop":    LaptopRegions,
	"gear":      GearRegions,
	"cloud":     CloudRegions,
	"palette":   PaletteRegions,
	"chart":     ChartRegions,
	"board":     BoardRegions,
	"shield":    ShieldRegions,
	"network":   NetworkRegions,
	"newsfeed":  NewsfeedRegions,
	"helix":     HelixRegions,
}

// Kinds lists every known kind name, sorted. "sphere" also accepts a radius
// suffix, e.g. "sphere:1.6".
func Kinds() []string {
	kinds := []string{"sphere"}
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Regions resolves a kind name to its region list.
func Regions(kind string) ([]Region, error) {
	name, param, hasParam := strings.Cut(strings.TrimSpace(kind), ":")
	if name == "sphere" {
		radius := float32(DefaultSphereRadius)
		if hasParam {
			r, err := strconv.ParseFloat(param, 32)
			if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
				return nil, fmt.Errorf("%w: bad sphere radius %q", ErrUnknownShape, param)
			}
			radius = float32(r)
		}
		return SphereRegions(radius), nil
	}
	if hasParam {
		return nil, fmt.Errorf("%w: %q takes no parameter", ErrUnknownShape, kind)
	}
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, kind)
	}
	return build(), nil
}

// Generate builds one shape of n particles.
func Generate(kind string, n int) (ParticleSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBudget, n)
	}
	regions, err := Regions(kind)
	if err != nil {
		return nil, err
	}
	return Allocate(n, regions), nil
}
