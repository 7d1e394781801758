package morphscape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityTier_ParseAndString(t *testing.T) {
	for _, tier := range []QualityTier{QualityLow, QualityMedium, QualityHigh} {
		got, err := ParseQualityTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}
	got, err := ParseQualityTier("High")
	require.NoError(t, err)
	assert.Equal(t, QualityHigh, got)

	_, err = ParseQualityTier("ultra")
	assert.Error(t, err)
	assert.Equal(t, "QualityTier(7)", QualityTier(7).String())
}

func TestResolveQuality(t *testing.T) {
	tests := []struct {
		name  string
		hints DeviceHints
		want  QualityTier
	}{
		{"desktop", DeviceHints{Cores: 16, MemoryGB: 32, ViewportWidth: 1920}, QualityHigh},
		{"mid cores", DeviceHints{Cores: 8, MemoryGB: 32, ViewportWidth: 1920}, QualityMedium},
		{"mid memory", DeviceHints{Cores: 16, MemoryGB: 8, ViewportWidth: 1920}, QualityMedium},
		{"few cores", DeviceHints{Cores: 4, MemoryGB: 32, ViewportWidth: 1920}, QualityLow},
		{"mobile width", DeviceHints{Cores: 16, MemoryGB: 32, ViewportWidth: 390}, QualityLow},
		{"unknown memory", DeviceHints{Cores: 16, ViewportWidth: 1920}, QualityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveQuality(tt.hints).Tier)
		})
	}
}

func TestQualityFor(t *testing.T) {
	high := QualityFor(QualityHigh)
	assert.Equal(t, 8, high.Multisample)
	assert.Equal(t, float32(2), high.PixelRatioCap)
	assert.True(t, high.PostFX.Enabled)
	assert.True(t, high.PostFX.Bloom.MipBlur)
	assert.Equal(t, 300, high.PostFX.Bloom.Resolution)
	assert.Equal(t, float32(0.0005), high.PostFX.ChromaticAberration)

	medium := QualityFor(QualityMedium)
	assert.Equal(t, 4, medium.Multisample)
	assert.False(t, medium.PostFX.Bloom.MipBlur)
	assert.Zero(t, medium.PostFX.ChromaticAberration)
	if diff := cmp.Diff(high.PostFX.Vignette, medium.PostFX.Vignette); diff != "" {
		t.Errorf("tiers should share the vignette (-high +medium):\n%s", diff)
	}

	low := QualityFor(QualityLow)
	assert.False(t, low.PostFX.Enabled)
	assert.Equal(t, float32(1), low.PixelRatioCap)
	assert.Equal(t, low, QualityFor(QualityTier(42)))
}

func TestReadMemInfoGB(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meminfo")
	require.NoError(t, os.WriteFile(path, []byte("MemFree: 100 kB\nMemTotal:       16777216 kB\n"), 0o644))
	assert.InDelta(t, 16, readMemInfoGB(path), 1e-9)

	require.NoError(t, os.WriteFile(path, []byte("MemTotal: lots kB\n"), 0o644))
	assert.Zero(t, readMemInfoGB(path))
	assert.Zero(t, readMemInfoGB(filepath.Join(dir, "missing")))
}

func TestQualityModule_ForcedTier(t *testing.T) {
	tier := QualityMedium
	app := NewApp().UseModules(QualityModule{Tier: &tier})
	q, ok := resource[QualitySettings](app)
	require.True(t, ok)
	assert.Equal(t, QualityMedium, q.Tier)

	app = NewApp().UseModules(QualityModule{Hints: &DeviceHints{Cores: 2}})
	q, _ = resource[QualitySettings](app)
	assert.Equal(t, QualityLow, q.Tier)
}
