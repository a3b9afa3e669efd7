package kss

import (
	"fmt"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/kssfont/core/font/outline"
)

// Deriver creates the variants of nominal glyphs in a host font.
type Deriver struct {
	fb     FontBuilder
	table  *Table
	conf   Config
	ascent float64
}

// NewDeriver creates a deriver for a host font. If table is nil, the
// standard table is used.
func NewDeriver(fb FontBuilder, table *Table, conf Config) *Deriver {
	if table == nil {
		table = StandardTable()
	}
	return &Deriver{
		fb:     fb,
		table:  table,
		conf:   conf,
		ascent: fb.Ascent(),
	}
}

// VariantNames lists the variant names of all nominal glyphs, grouped by
// nominal glyph, in table order.
func (d *Deriver) VariantNames(nominals []string) []string {
	names := make([]string, 0, len(nominals)*len(d.table.rules))
	for _, n := range nominals {
		for _, r := range d.table.rules {
			names = append(names, DerivedName(n, r.Name))
		}
	}
	return names
}

// CheckCollisions returns an EDUPLICATE error if the font already contains
// a glyph with the name of any variant of the nominal glyphs.
func (d *Deriver) CheckCollisions(nominals []string) error {
	var taken []string
	for _, name := range d.VariantNames(nominals) {
		if _, exists := d.fb.Glyph(name); exists {
			taken = append(taken, name)
		}
	}
	if len(taken) > 0 {
		tracer().Errorf("%d variant names already taken, first is %s", len(taken), taken[0])
		return core.Error(core.EDUPLICATE, "font already contains %d variant glyphs, e.g. %s",
			len(taken), taken[0])
	}
	return nil
}

// derivation is a variant together with its scale relative to the nominal glyph.
type derivation struct {
	glyph  Glyph
	sx, sy float64
}

// Derive creates all variants of a nominal glyph, in derivation order.
// The nominal glyph is not modified.
func (d *Deriver) Derive(nominal GlyphReader) ([]Glyph, error) {
	done := make(map[string]derivation, len(d.table.rules))
	variants := make([]Glyph, 0, len(d.table.rules))
	for _, rule := range d.table.DerivationOrder() {
		var src GlyphReader = nominal
		srcSX, srcSY := 1.0, 1.0
		if rule.Source != "" {
			s, ok := done[rule.Source]
			if !ok {
				panic(fmt.Sprintf("variant %s of %s derived before its source %s",
					rule.Name, nominal.Name(), rule.Source))
			}
			src, srcSX, srcSY = s.glyph, s.sx, s.sy
		}
		g, err := d.derive(nominal, src, rule, srcSX, srcSY)
		if err != nil {
			return variants, err
		}
		done[rule.Name] = derivation{glyph: g, sx: rule.ScaleX, sy: d.conf.VerticalCompression}
		variants = append(variants, g)
	}
	return variants, nil
}

func (d *Deriver) derive(nominal, src GlyphReader, rule TransformRule, srcSX, srcSY float64) (Glyph, error) {
	name := DerivedName(nominal.Name(), rule.Name)
	g, err := d.fb.CreateGlyph(-1, name)
	if err != nil {
		return nil, err
	}
	w := nominal.Width()
	g.SetClass(rule.Width.Class())
	g.SetOutline(src.Outline().Copy())
	m := outline.Identity()
	if rule.Continuation {
		m = m.Then(outline.Translate(-src.Width(), 0))
	}
	m = m.Then(outline.Scale(rule.ScaleX/srcSX, d.conf.VerticalCompression/srcSY))
	for _, f := range rule.Recenter {
		m = m.Then(outline.Translate(f*w, 0))
	}
	g.Transform(m)
	g.Transform(outline.Translate(0, nominal.Bounds().MaxY-g.Bounds().MaxY))
	switch rule.Width {
	case NominalWidth:
		g.SetWidth(w)
	case ZeroWidth:
		g.SetWidth(0)
	}
	bbox := g.Bounds()
	for _, spec := range rule.Anchors {
		g.AddAnchor(d.anchor(spec, w, bbox))
	}
	tracer().Debugf("derived %s: %v, bbox=%v", name, m, bbox)
	return g, nil
}

func (d *Deriver) anchor(spec AnchorSpec, nominalWidth float64, bbox opentype.BoundingBox) opentype.Anchor {
	a := opentype.Anchor{Class: spec.Class, Kind: spec.Kind}
	if spec.X == AtNominalWidth {
		a.X = nominalWidth
	}
	gap := d.conf.IntraClusterGap * nominalWidth
	switch spec.Y {
	case BelowBottom:
		a.Y = bbox.MinY - gap
	case AboveTop:
		a.Y = bbox.MaxY + gap
	case AtBaseline:
		a.Y = 0
	case AtAscent:
		a.Y = d.ascent
	}
	return a
}
