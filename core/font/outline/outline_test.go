package outline

import (
	"testing"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func pt(x, y int) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
}

// square from (100,0) to (900,800), y-up
func square() *Outline {
	return New(
		sfnt.Segment{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{pt(100, 0)}},
		sfnt.Segment{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{pt(900, 0)}},
		sfnt.Segment{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{pt(900, 800)}},
		sfnt.Segment{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{pt(100, 800)}},
		sfnt.Segment{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{pt(100, 0)}},
	)
}

func TestBounds(t *testing.T) {
	bbox := square().Bounds()
	assert.Equal(t, opentype.BoundingBox{MinX: 100, MinY: 0, MaxX: 900, MaxY: 800}, bbox)
	assert.True(t, (&Outline{}).Bounds().Empty())
}

func TestFromSegmentsFlipsY(t *testing.T) {
	down := sfnt.Segments{
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{pt(0, -700)}},
		{Op: sfnt.SegmentOpQuadTo, Args: [3]fixed.Point26_6{pt(50, -750), pt(100, 10)}},
	}
	o := FromSegments(down)
	bbox := o.Bounds()
	assert.Equal(t, -10.0, bbox.MinY)
	assert.Equal(t, 750.0, bbox.MaxY)
	assert.Equal(t, fixed.I(-700), down[0].Args[0].Y, "source segments must stay untouched")
}

func TestScaleAndTranslate(t *testing.T) {
	o := square().Transform(Scale(0.5, 0.8))
	bbox := o.Bounds()
	assert.Equal(t, opentype.BoundingBox{MinX: 50, MinY: 0, MaxX: 450, MaxY: 640}, bbox)
	o.Transform(Translate(0, 160))
	assert.Equal(t, 800.0, o.Bounds().MaxY)
	assert.Equal(t, 160.0, o.Bounds().MinY)
}

func TestCopyIsDeep(t *testing.T) {
	o := square()
	c := o.Copy().Transform(Translate(-1000, 0))
	assert.Equal(t, 100.0, o.Bounds().MinX)
	assert.Equal(t, -900.0, c.Bounds().MinX)
}

func TestAffineComposition(t *testing.T) {
	m := Translate(-1000, 0).Then(Scale(0.5, 0.8)).Then(Translate(-500, 0))
	p := m.Apply(arithm.P(1000, 100))
	assert.InDelta(t, -500.0, real(p), 1e-9)
	assert.InDelta(t, 80.0, imag(p), 1e-9)
	assert.True(t, Translate(3, 4).IsTranslation())
	assert.False(t, Scale(1, 0.8).IsTranslation())
	assert.Equal(t, Identity(), Identity().Then(Identity()))
}
