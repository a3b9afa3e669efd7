package kss

import (
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/kssfont/core/font/outline"
)

// GlyphReader gives read access to a glyph of a host font.
type GlyphReader interface {
	Name() string
	Width() float64
	Bounds() opentype.BoundingBox // bounds of the current outline
	Outline() *outline.Outline
}

// Glyph is a glyph of a host font which may be modified.
type Glyph interface {
	GlyphReader
	SetClass(opentype.GlyphClass)
	SetWidth(float64)
	SetOutline(*outline.Outline) // the glyph takes ownership of the outline
	Transform(outline.Affine)
	AddAnchor(opentype.Anchor)
}

// FontBuilder is the capability of a host font to receive new glyphs,
// attachment lookups, metadata and rule programs.
type FontBuilder interface {
	// CreateGlyph creates a new, empty glyph. Unencoded glyphs have a code
	// point of -1. Creating a glyph with a name already present is an error.
	CreateGlyph(codepoint rune, name string) (Glyph, error)
	// Glyph finds a glyph by name.
	Glyph(name string) (Glyph, bool)
	// Select returns the encoded glyphs with code points in [lo…hi], in
	// code point order.
	Select(lo, hi rune) []GlyphReader
	// Ascent is the typographic ascent of the font, in font units.
	Ascent() float64
	SetLineGap(gap int)
	SetNames(names opentype.FontNames)
	AddAttachmentLookup(lookup opentype.AttachmentLookup) error
	// MergeFeature reads a rule program from a file and merges it into the
	// font's layout tables.
	MergeFeature(path string) error
}
