package glyphset

import (
	"fmt"

	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/kssfont/core/font/outline"
)

// Glyph is a glyph held in memory.
type Glyph struct {
	name      string
	codepoint rune // -1 if unencoded
	class     opentype.GlyphClass
	width     float64
	outline   *outline.Outline
	anchors   []opentype.Anchor
}

// Name returns the glyph name.
func (g *Glyph) Name() string {
	return g.name
}

// CodePoint returns the code point a glyph is encoded for, or -1.
func (g *Glyph) CodePoint() rune {
	return g.codepoint
}

// Class returns the GDEF class of g.
func (g *Glyph) Class() opentype.GlyphClass {
	return g.class
}

// SetClass sets the GDEF class of g.
func (g *Glyph) SetClass(c opentype.GlyphClass) {
	g.class = c
}

// Width returns the advance width of g.
func (g *Glyph) Width() float64 {
	return g.width
}

// SetWidth sets the advance width of g.
func (g *Glyph) SetWidth(w float64) {
	g.width = w
}

// Outline returns the outline of g. It is never nil.
func (g *Glyph) Outline() *outline.Outline {
	if g.outline == nil {
		g.outline = outline.New()
	}
	return g.outline
}

// SetOutline replaces the outline of g.
func (g *Glyph) SetOutline(o *outline.Outline) {
	g.outline = o
}

// Bounds returns the bounding box of the outline of g.
func (g *Glyph) Bounds() opentype.BoundingBox {
	return g.Outline().Bounds()
}

// Transform transforms the outline of g.
func (g *Glyph) Transform(m outline.Affine) {
	g.Outline().Transform(m)
}

// AddAnchor adds an anchor point to g.
func (g *Glyph) AddAnchor(a opentype.Anchor) {
	g.anchors = append(g.anchors, a)
}

// Anchors returns the anchor points of g, in order of addition.
func (g *Glyph) Anchors() []opentype.Anchor {
	return g.anchors
}

func (g *Glyph) String() string {
	if g.codepoint < 0 {
		return fmt.Sprintf("%s(%s, w=%.0f)", g.name, g.class, g.width)
	}
	return fmt.Sprintf("%s[%U](%s, w=%.0f)", g.name, g.codepoint, g.class, g.width)
}
