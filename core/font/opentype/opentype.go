/*
Package opentype holds the vocabulary shared by font augmentation packages:
layout tags, metrics, glyph classes, anchors and lookup kinds.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package opentype

import (
	"fmt"
	"regexp"
)

// --- Tags ------------------------------------------------------------------

// Tag is an OpenType layout tag, e.g. a feature tag or a script tag.
type Tag uint32

// T returns a Tag from a string. Strings shorter than 4 bytes are padded
// with spaces, longer strings are cut.
//
//	T("ccmp")
func T(t string) Tag {
	b := []byte((t + "    ")[:4])
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Default script and language tags.
var (
	DFLT = T("DFLT")
	Dflt = T("dflt")
)

// --- Font and glyph metrics ------------------------------------------------

// FontMetricsInfo contains selected metric information for a font, in font units.
type FontMetricsInfo struct {
	UnitsPerEm      float64 // units per em
	Ascent, Descent float64 // ascender and descender
	LineGap         float64 // typographic line gap
}

// BoundingBox describes the bounding box of a glyph, in font units with
// y growing upwards.
type BoundingBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Empty is a predicate: has this box a zero area?
func (bbox BoundingBox) Empty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx is the horizontal extent of this box.
func (bbox BoundingBox) Dx() float64 {
	return bbox.MaxX - bbox.MinX
}

// Dy is the vertical extent of this box.
func (bbox BoundingBox) Dy() float64 {
	return bbox.MaxY - bbox.MinY
}

func (bbox BoundingBox) String() string {
	return fmt.Sprintf("[%.2f,%.2f %.2f,%.2f]", bbox.MinX, bbox.MinY, bbox.MaxX, bbox.MaxY)
}

// --- Glyph classes and anchors ---------------------------------------------

// GlyphClass is the GDEF class of a glyph.
type GlyphClass uint8

const (
	UnclassifiedGlyph GlyphClass = iota
	BaseGlyph
	LigatureGlyph
	MarkGlyph
	ComponentGlyph
)

func (c GlyphClass) String() string {
	switch c {
	case BaseGlyph:
		return "baseglyph"
	case LigatureGlyph:
		return "baseligature"
	case MarkGlyph:
		return "mark"
	case ComponentGlyph:
		return "component"
	}
	return "automatic"
}

// AnchorKind is the role an anchor point plays in an attachment.
type AnchorKind uint8

const (
	BaseAnchor     AnchorKind = iota // anchor on a base glyph
	MarkAnchor                       // anchor on a mark attaching to something
	BaseMarkAnchor                   // anchor on a mark other marks attach to
)

func (k AnchorKind) String() string {
	switch k {
	case BaseAnchor:
		return "base"
	case MarkAnchor:
		return "mark"
	case BaseMarkAnchor:
		return "basemark"
	}
	return "?"
}

// Anchor is an attachment point of a glyph.
type Anchor struct {
	Class string
	Kind  AnchorKind
	X, Y  float64
}

func (a Anchor) String() string {
	return fmt.Sprintf("%s/%s(%.2f,%.2f)", a.Class, a.Kind, a.X, a.Y)
}

// LookupKind is the type of a GPOS lookup declared by the host.
type LookupKind uint8

const (
	MarkToBase LookupKind = iota + 1
	MarkToMark
)

func (k LookupKind) String() string {
	switch k {
	case MarkToBase:
		return "gpos_mark2base"
	case MarkToMark:
		return "gpos_mark2mark"
	}
	return "gpos_unknown"
}

// --- Font names ------------------------------------------------------------

// FontNames holds the naming metadata of a font.
type FontNames struct {
	Family     string
	FullName   string
	FontName   string // PostScript name
	Version    string
	Copyright  string
	License    string
	LicenseURL string
	UniqueID   string
}

var nonPostScript = regexp.MustCompile(`[^!-$&'*-.0-;=?-Z\\^-z|~]+`)

// PostScriptName strips every character not allowed in a PostScript font
// name from name.
func PostScriptName(name string) string {
	return nonPostScript.ReplaceAllString(name, "")
}

// Complete fills empty derived fields: full name, PostScript name and
// unique ID.
func (n FontNames) Complete() FontNames {
	if n.FullName == "" {
		n.FullName = n.Family
	}
	if n.FontName == "" {
		n.FontName = PostScriptName(n.Family)
	}
	if n.UniqueID == "" {
		n.UniqueID = fmt.Sprintf("%s:%s", n.FullName, n.Version)
	}
	return n
}

// AttachmentLookup declares a GPOS attachment lookup together with its
// single subtable and anchor class.
type AttachmentLookup struct {
	Name        string
	Kind        LookupKind
	Feature     Tag
	Script      Tag
	Language    Tag
	Subtable    string
	AnchorClass string
}
