package kss

import (
	"github.com/npillmayer/kssfont/core/font/fea"
	"github.com/npillmayer/kssfont/core/font/opentype"
)

// Control glyphs used by the rule program.
const (
	CGJ       = "uni034F"   // combining grapheme joiner, forces a wide cluster start
	ZWSP      = "uni200B"   // zero width space
	ZWSPSplit = "uni200B.1" // half of a decomposed zero width space
)

// NominalClass is the name of the class of all nominal glyphs.
const NominalClass = "kss"

// Synthesize creates the rule program for a selection of nominal glyphs.
//
// The program declares the class of nominal glyphs, a class and a lookup per
// transform rule, the contextual substitutions selecting the variants, and
// the positioning rules lifting a cluster's initial glyph by the number of
// rows stacked below it. For an empty selection, the program consists of the
// language system and an empty class.
func Synthesize(nominals []string, table *Table, conf Config, ascent float64) (*fea.Program, error) {
	if table == nil {
		table = StandardTable()
	}
	prog := fea.NewProgram()
	prog.LanguageSystem(opentype.DFLT, opentype.Dflt)
	kss := prog.Class(NominalClass, nominals...)
	if len(nominals) == 0 {
		tracer().Infof("empty selection, no variant rules")
		return prog, prog.Err()
	}
	classes := make(map[Role]fea.ClassRef)
	lookups := make(map[Role]fea.LookupRef)
	for _, rule := range table.Rules() {
		variants := make([]string, len(nominals))
		for i, n := range nominals {
			variants[i] = DerivedName(n, rule.Name)
		}
		classes[rule.Role] = prog.Class(rule.Name, variants...)
		lookups[rule.Role] = prog.Lookup(rule.Name, func(b *fea.Block) {
			for i, n := range nominals {
				src := n
				if rule.Source != "" {
					src = DerivedName(n, rule.Source)
				}
				b.Substitute(fea.Glyph(src), fea.Glyph(variants[i]))
			}
		})
	}
	ccmp := opentype.T("ccmp")
	prog.Feature(ccmp, func(b *fea.Block) {
		b.Substitute(fea.Glyph(ZWSP), fea.Glyph(ZWSPSplit), fea.Glyph(ZWSPSplit))
	})
	prog.Feature(ccmp, func(b *fea.Block) {
		b.Substitute(fea.Seq(fea.Glyph(ZWSPSplit), fea.Glyph(ZWSPSplit)), fea.Glyph(ZWSP))
	})
	wideInit, cont, halfInit := classes[WideInit], classes[Continuation], classes[HalfInit]
	halfCont, halfTail := classes[HalfContinuation], classes[HalfTail]
	// first tier: a glyph after a cluster member continues the cluster,
	// otherwise it starts one
	prog.Feature(ccmp, func(b *fea.Block) {
		b.Chain(fea.Union(wideInit, cont, halfInit), fea.Via(kss, lookups[Continuation]))
		b.Chain(fea.Via(kss, lookups[WideInit]), fea.Marked(fea.Glyph(CGJ)), kss)
		b.Chain(fea.Via(kss, lookups[HalfInit]), kss)
	})
	// second tier: continuations pair up into half-width rows
	prog.Feature(ccmp, func(b *fea.Block) {
		b.Chain(fea.Union(halfInit, halfCont), fea.Via(cont, lookups[HalfTail]))
		b.Chain(fea.Via(cont, lookups[HalfContinuation]), cont)
	})
	row := fea.Seq(halfCont, halfTail)
	last := fea.Union(cont, halfCont)
	prog.Feature(opentype.T("mark"), func(b *fea.Block) {
		for rows := conf.MaxExtraRows; rows > 0; rows-- {
			lift := fea.ValueRecord{YPlacement: conf.RowOffset(rows, ascent)}
			b.Position(fea.WithValue(wideInit, lift), fea.Repeat(row, rows-1), last)
		}
		for rows := conf.MaxExtraRows; rows > 0; rows-- {
			lift := fea.ValueRecord{YPlacement: conf.RowOffset(rows, ascent)}
			b.Position(fea.WithValue(halfInit, lift), halfTail, fea.Repeat(row, rows-1), last)
		}
	})
	tracer().Infof("rule program for %d nominal glyphs, %d rows", len(nominals), conf.MaxExtraRows)
	return prog, prog.Err()
}
