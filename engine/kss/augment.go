package kss

import (
	"os"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/opentype"
)

// Result summarizes an augmentation run.
type Result struct {
	Nominals []string // nominal glyphs in selection order
	Variants []string // derived glyphs, grouped by nominal glyph
	LineGap  int      // line gap set in the font
	Program  string   // text of the merged rule program
}

// Augment adds stacked cluster forms to a font.
//
// The run is all-or-nothing from the caller's point of view: any error
// aborts it. Variant name collisions are detected before the font is
// modified. Errors after that point leave the font partially augmented.
func Augment(fb FontBuilder, table *Table, conf Config) (*Result, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		table = StandardTable()
	}
	deriver := NewDeriver(fb, table, conf)
	selection := fb.Select(conf.FirstCodePoint, conf.LastCodePoint)
	result := &Result{Nominals: make([]string, len(selection))}
	for i, g := range selection {
		result.Nominals[i] = g.Name()
	}
	tracer().Infof("augmenting %d nominal glyphs in %U…%U",
		len(selection), conf.FirstCodePoint, conf.LastCodePoint)
	if err := deriver.CheckCollisions(result.Nominals); err != nil {
		return nil, err
	}
	if err := addControlGlyphs(fb); err != nil {
		return nil, err
	}
	if err := addAttachmentLookups(fb); err != nil {
		return nil, err
	}
	fb.SetNames(conf.Names.Complete())
	ascent := fb.Ascent()
	result.LineGap = conf.LineGap(ascent)
	fb.SetLineGap(result.LineGap)
	for _, nominal := range selection {
		variants, err := deriver.Derive(nominal)
		if err != nil {
			return nil, err
		}
		for _, v := range variants {
			result.Variants = append(result.Variants, v.Name())
		}
	}
	prog, err := Synthesize(result.Nominals, table, conf, ascent)
	if err != nil {
		return nil, err
	}
	result.Program = prog.String()
	if err = mergeProgram(fb, result.Program); err != nil {
		return nil, err
	}
	tracer().Infof("derived %d glyphs, line gap is %d", len(result.Variants), result.LineGap)
	return result, nil
}

type controlGlyph struct {
	codepoint rune
	name      string
	class     opentype.GlyphClass
}

var controlGlyphs = []controlGlyph{
	{0x034F, CGJ, opentype.MarkGlyph},
	{0x200B, ZWSP, opentype.BaseGlyph},
	{-1, ZWSPSplit, opentype.BaseGlyph},
}

// addControlGlyphs creates the zero-width glyphs the rule program uses.
// Glyphs already present are reused.
func addControlGlyphs(fb FontBuilder) error {
	for _, cg := range controlGlyphs {
		g, exists := fb.Glyph(cg.name)
		if !exists {
			var err error
			if g, err = fb.CreateGlyph(cg.codepoint, cg.name); err != nil {
				return err
			}
		}
		g.SetClass(cg.class)
		g.SetWidth(0)
	}
	return nil
}

// addAttachmentLookups declares the lookups the variants' anchors belong to.
func addAttachmentLookups(fb FontBuilder) error {
	for _, l := range []opentype.AttachmentLookup{
		{
			Name: "'mkmk'", Kind: opentype.MarkToMark, Feature: opentype.T("mkmk"),
			Script: opentype.DFLT, Language: opentype.Dflt,
			Subtable: "'mkmk'-1", AnchorClass: ClusterNext,
		},
		{
			Name: "'mark'", Kind: opentype.MarkToBase, Feature: opentype.T("mark"),
			Script: opentype.DFLT, Language: opentype.Dflt,
			Subtable: "'mark'-1", AnchorClass: ClusterInit,
		},
	} {
		if err := fb.AddAttachmentLookup(l); err != nil {
			return err
		}
	}
	return nil
}

// mergeProgram writes the rule program to a temporary file and has the
// host merge it. The file is removed in any case.
func mergeProgram(fb FontBuilder, program string) error {
	f, err := os.CreateTemp("", "kss-*.fea")
	if err != nil {
		return core.WrapError(err, core.EIO, "cannot create rule program file")
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err = f.WriteString(program); err != nil {
		f.Close()
		return core.WrapError(err, core.EIO, "cannot write rule program file %s", path)
	}
	if err = f.Close(); err != nil {
		return core.WrapError(err, core.EIO, "cannot write rule program file %s", path)
	}
	tracer().Debugf("merging rule program %s", path)
	return fb.MergeFeature(path)
}
