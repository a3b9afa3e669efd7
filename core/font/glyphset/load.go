package glyphset

import (
	"fmt"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font"
	"github.com/npillmayer/kssfont/core/font/fea"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/kssfont/core/font/outline"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FromScalableFont loads every glyph of a font. Glyphs are encoded for the
// code points of the given ranges, each range being a pair [lo, hi].
//
// Outlines, advances and metrics are read at a size of one em per unit, i.e.
// in font units.
func FromScalableFont(sf *font.ScalableFont, ranges ...[2]rune) (*Font, error) {
	if sf == nil || sf.SFNT == nil {
		return nil, core.Error(core.EMISSING, "no font to load glyphs from")
	}
	otf := sf.SFNT
	var b sfnt.Buffer
	upem := otf.UnitsPerEm()
	ppem := fixed.I(int(upem))
	m, err := otf.Metrics(&b, ppem, xfont.HintingNone)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read metrics of %s", sf.Fontname)
	}
	f := New(opentype.FontMetricsInfo{
		UnitsPerEm: float64(upem),
		Ascent:     fromFixed(m.Ascent),
		Descent:    -fromFixed(m.Descent),
		LineGap:    fromFixed(m.Height - m.Ascent - m.Descent),
	})
	f.names.Family = sf.Fontname
	if f.names.Version, err = otf.Name(&b, sfnt.NameIDVersion); err != nil {
		tracer().Debugf("font %s has no version name", sf.Fontname)
	}
	glyphs := make([]*Glyph, otf.NumGlyphs())
	for i := range glyphs {
		x := sfnt.GlyphIndex(i)
		name, err := otf.GlyphName(&b, x)
		if err != nil || !fea.ValidGlyphName(name) {
			name = fmt.Sprintf("glyph%05d", i)
		}
		if _, dup := f.glyphs.Get(name); dup {
			name = fmt.Sprintf("%s.%05d", name, i)
		}
		g, err := f.AddGlyph(-1, name)
		if err != nil {
			return nil, err
		}
		adv, err := otf.GlyphAdvance(&b, x, ppem, xfont.HintingNone)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "cannot read advance of glyph %s", name)
		}
		g.width = fromFixed(adv)
		segs, err := otf.LoadGlyph(&b, x, ppem, nil)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "cannot load outline of glyph %s", name)
		}
		g.outline = outline.FromSegments(segs)
		g.class = opentype.BaseGlyph
		glyphs[i] = g
	}
	encoded := 0
	for _, rng := range ranges {
		for r := rng[0]; r <= rng[1]; r++ {
			x, err := otf.GlyphIndex(&b, r)
			if err != nil || x == 0 {
				continue
			}
			g := glyphs[x]
			if g.codepoint >= 0 {
				continue // glyph is already encoded for another code point
			}
			g.codepoint = r
			f.cmap[r] = g
			encoded++
		}
	}
	tracer().Infof("loaded %d glyphs from %s, %d encoded", len(glyphs), sf.Fontname, encoded)
	return f, nil
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
