/*
Package outline holds glyph outlines in font units and the affine
transformations applied to them.

Outlines are kept as sequences of sfnt segments with 26.6 fixed point
coordinates. Contrary to package sfnt, y grows upwards, as it does in
font design space.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package outline

import (
	"math"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Outline is the contour data of a glyph.
type Outline struct {
	segs sfnt.Segments
}

// New creates an outline from segments which already use y-up coordinates.
func New(segs ...sfnt.Segment) *Outline {
	o := &Outline{segs: make(sfnt.Segments, len(segs))}
	copy(o.segs, segs)
	return o
}

// FromSegments creates an outline from segments as loaded by package sfnt.
// The glyph must have been loaded at a ppem equal to the font's units per em.
func FromSegments(segs sfnt.Segments) *Outline {
	o := &Outline{segs: make(sfnt.Segments, len(segs))}
	for i, seg := range segs {
		o.segs[i].Op = seg.Op
		for j := range seg.Args {
			o.segs[i].Args[j] = fixed.Point26_6{X: seg.Args[j].X, Y: -seg.Args[j].Y}
		}
	}
	return o
}

// Segments returns the segments of an outline, y-up.
func (o *Outline) Segments() sfnt.Segments {
	if o == nil {
		return nil
	}
	return o.segs
}

// Empty is a predicate: does this outline have no contours?
func (o *Outline) Empty() bool {
	return o == nil || len(o.segs) == 0
}

// Copy returns a deep copy of o.
func (o *Outline) Copy() *Outline {
	if o == nil {
		return &Outline{}
	}
	return New(o.segs...)
}

// Bounds returns the bounding box of all points of o, including control
// points. An empty outline has an empty bounding box at the origin.
func (o *Outline) Bounds() opentype.BoundingBox {
	if o.Empty() {
		return opentype.BoundingBox{}
	}
	r := o.segs.Bounds()
	return opentype.BoundingBox{
		MinX: fromFixed(r.Min.X),
		MinY: fromFixed(r.Min.Y),
		MaxX: fromFixed(r.Max.X),
		MaxY: fromFixed(r.Max.Y),
	}
}

// Transform applies m to every point of o, in place, and returns o.
//
// Pure translations are added in fixed point arithmetic and are therefore
// exact. Other transformations round each resulting coordinate to the
// 26.6 grid.
func (o *Outline) Transform(m Affine) *Outline {
	if o.Empty() {
		return o
	}
	if m.IsTranslation() {
		dx, dy := toFixed(m[4]), toFixed(m[5])
		for i := range o.segs {
			for j := range argCount(o.segs[i].Op) {
				o.segs[i].Args[j].X += dx
				o.segs[i].Args[j].Y += dy
			}
		}
		return o
	}
	for i := range o.segs {
		for j := range argCount(o.segs[i].Op) {
			p := o.segs[i].Args[j]
			q := m.Apply(arithm.P(fromFixed(p.X), fromFixed(p.Y)))
			o.segs[i].Args[j] = fixed.Point26_6{X: toFixed(real(q)), Y: toFixed(imag(q))}
		}
	}
	return o
}

func argCount(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	}
	return 1
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(x * 64))
}
