package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsphere/internal/geom"
	"wordsphere/internal/words"
)

func sampleItems(t *testing.T, n int) []words.Item {
	t.Helper()
	items, err := words.NewSeeded(words.DefaultPool, 11).Select(n)
	require.NoError(t, err)
	return items
}

func TestBuildIndexAligned(t *testing.T) {
	items := sampleItems(t, 20)
	sc, err := Build(items, DefaultOptions(), 800, 600)
	require.NoError(t, err)

	require.Len(t, sc.Points, 20)
	require.Len(t, sc.Group.Labels, 20)
	for i, l := range sc.Group.Labels {
		assert.Equal(t, i, l.Index)
		assert.Equal(t, items[i], l.Item)
		assert.Equal(t, sc.Points[i], l.Position)
		assert.InDelta(t, 2.2, l.Position.Len(), 1e-9)
	}
	assert.NotEmpty(t, sc.ID)
	assert.InDelta(t, 800.0/600.0, sc.Camera.Aspect, 1e-12)
}

func TestLabelStyleRules(t *testing.T) {
	items := []words.Item{{Text: "AI", Frequency: 1}, {Text: "Data", Frequency: 0.5}, {Text: "Law", Frequency: 0}}
	sc, err := Build(items, DefaultOptions(), 800, 600)
	require.NoError(t, err)
	featured, mid, low := sc.Group.Labels[0], sc.Group.Labels[1], sc.Group.Labels[2]

	assert.True(t, featured.Featured)
	assert.Equal(t, 1.2, featured.Scale)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, featured.Color)
	assert.Equal(t, 1.0, featured.Opacity)

	assert.False(t, mid.Featured)
	assert.InDelta(t, 0.85, mid.Scale, 1e-12)
	assert.InDelta(t, 0.85*0.3, mid.Height, 1e-12)
	assert.Equal(t, mid.Scale, mid.Width)
	assert.Equal(t, color.RGBA{0x66, 0xcc, 0xff, 255}, mid.Color)
	assert.Equal(t, 0.7, mid.Opacity)

	assert.InDelta(t, 0.5, low.Scale, 1e-12)
}

func TestLabelFeaturedScaleIgnoresFrequency(t *testing.T) {
	items := []words.Item{{Text: "AI", Frequency: 0.1}, {Text: "Data", Frequency: 1}}
	sc, err := Build(items, DefaultOptions(), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.2, sc.Group.Labels[0].Scale)
	assert.InDelta(t, 1.2, sc.Group.Labels[1].Scale, 1e-12)
}

func TestLabelTextures(t *testing.T) {
	items := []words.Item{{Text: "AI", Frequency: 1}, {Text: "Data", Frequency: 0.5}}
	sc, err := Build(items, DefaultOptions(), 800, 600)
	require.NoError(t, err)
	a, b := sc.Group.Labels[0].Texture, sc.Group.Labels[1].Texture
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, 256, a.Bounds().Dx())
	assert.Equal(t, 64, a.Bounds().Dy())
	assert.NotSame(t, a, b)

	maxAlpha := func(pix []uint8) uint8 {
		var m uint8
		for i := 3; i < len(pix); i += 4 {
			if pix[i] > m {
				m = pix[i]
			}
		}
		return m
	}
	assert.Equal(t, uint8(255), maxAlpha(a.Pix), "featured label is fully opaque")
	assert.InDelta(t, 178, int(maxAlpha(b.Pix)), 2, "other labels are 70% opaque")
	// corners stay transparent
	assert.Equal(t, uint8(0), a.Pix[3])
}

func TestLabelTextOverflowClipped(t *testing.T) {
	long := words.Item{Text: "Supercalifragilisticexpialidocious", Frequency: 1}
	sc, err := Build([]words.Item{long}, DefaultOptions(), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 256, sc.Group.Labels[0].Texture.Bounds().Dx())
}

func TestBuildSingleItem(t *testing.T) {
	sc, err := Build([]words.Item{{Text: "Solo", Frequency: 1}}, DefaultOptions(), 640, 480)
	require.NoError(t, err)
	require.Len(t, sc.Points, 1)
	assert.Equal(t, geom.Vec3{Y: 2.2}, sc.Points[0])
	f := sc.Frame(640, 480)
	require.Len(t, f.Sprites, 1)
	assert.InDelta(t, 320, f.Sprites[0].X, 1e-9)
	assert.Less(t, f.Sprites[0].Y, 240.0)
}

func TestFrameOrderedBackToFront(t *testing.T) {
	sc, err := Build(sampleItems(t, 20), DefaultOptions(), 800, 600)
	require.NoError(t, err)
	f := sc.Frame(800, 600)
	require.Len(t, f.Sprites, 20)
	for i := 1; i < len(f.Sprites); i++ {
		assert.GreaterOrEqual(t, f.Sprites[i-1].Depth, f.Sprites[i].Depth)
	}
	for _, s := range f.Sprites {
		assert.Equal(t, s.Depth > 8, s.Behind)
		assert.InDelta(t, s.W*0.3, s.H, 1e-9)
	}
	assert.NotEmpty(t, f.Guide)
}

func TestStepRotates(t *testing.T) {
	sc, err := Build(sampleItems(t, 5), DefaultOptions(), 800, 600)
	require.NoError(t, err)
	before := sc.Frame(800, 600)
	sc.Step()
	sc.Step()
	assert.InDelta(t, 0.006, sc.Group.RotationY, 1e-12)
	after := sc.Frame(800, 600)
	assert.InDelta(t, 0.006, after.Rotation, 1e-12)
	// positions are stored unrotated
	assert.InDelta(t, 2.2, sc.Group.Labels[1].Position.Len(), 1e-9)
	x := make(map[*Label]float64)
	for _, s := range before.Sprites {
		x[s.Label] = s.X
	}
	moved := 0
	for _, s := range after.Sprites {
		if s.X != x[s.Label] {
			moved++
		}
	}
	assert.Greater(t, moved, 0)
}

func TestSceneClear(t *testing.T) {
	sc, err := Build(sampleItems(t, 3), DefaultOptions(), 800, 600)
	require.NoError(t, err)
	labels := sc.Group.Labels
	sc.Clear()
	assert.Empty(t, sc.Group.Labels)
	assert.Empty(t, sc.Points)
	for _, l := range labels {
		assert.Nil(t, l.Texture)
	}
	assert.Empty(t, sc.Frame(800, 600).Sprites)
}

func TestLightsShade(t *testing.T) {
	l := DefaultOptions().Lights
	lit := l.Shade(geom.Vec3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, 1.0, lit)
	assert.InDelta(t, 0.8, l.Shade(geom.Vec3{X: -1, Y: -1, Z: -1}), 1e-12)
	side := l.Shade(geom.Vec3{X: 1})
	assert.InDelta(t, math.Min(1, 0.8+0.7/math.Sqrt(3)), side, 1e-12)
}

func TestFrameOutline(t *testing.T) {
	sc, err := Build(sampleItems(t, 4), DefaultOptions(), 600, 600)
	require.NoError(t, err)
	f := sc.Frame(600, 600)
	require.Len(t, f.Outline, outlineSegments+1)
	assert.InDelta(t, f.Outline[0].X, f.Outline[len(f.Outline)-1].X, 1e-9)

	// every label lies inside the silhouette
	var rad float64
	for _, p := range f.Outline {
		rad = math.Max(rad, math.Hypot(p.X-300, p.Y-300))
	}
	for _, sp := range f.Sprites {
		assert.LessOrEqual(t, math.Hypot(sp.X-300, sp.Y-300), rad+1e-6)
	}
}
