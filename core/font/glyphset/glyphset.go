/*
Package glyphset is an in-memory font host for augmentation.

A glyph set holds named glyphs with outlines, widths, classes and anchor
points, a character map, attachment lookups, naming metadata and the rule
programs merged into it. It is populated from a scalable font or built up
glyph by glyph, and implements kss.FontBuilder.

Rule programs are checked when they are merged: classes and lookups must
be declared before use, and every referenced glyph must be present.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphset

import (
	"os"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/fea"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/kssfont/engine/kss"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'kss.fonts'
func tracer() tracing.Trace {
	return tracing.Select("kss.fonts")
}

// Font is a glyph set with layout information.
type Font struct {
	glyphs   *linkedhashmap.Map // name → *Glyph, in order of creation
	index    *trie.Trie         // glyph names, for prefix queries
	cmap     map[rune]*Glyph
	metrics  opentype.FontMetricsInfo
	lineGap  int
	names    opentype.FontNames
	lookups  []opentype.AttachmentLookup
	features []*fea.Document
	programs []string
}

var _ kss.FontBuilder = (*Font)(nil)

// New creates an empty glyph set with given metrics.
func New(metrics opentype.FontMetricsInfo) *Font {
	return &Font{
		glyphs:  linkedhashmap.New(),
		index:   trie.New(),
		cmap:    make(map[rune]*Glyph),
		metrics: metrics,
		lineGap: int(metrics.LineGap),
	}
}

// --- Glyphs ----------------------------------------------------------------

// CreateGlyph creates an empty glyph. A code point of -1 creates an
// unencoded glyph. Names and code points must not be taken.
func (f *Font) CreateGlyph(codepoint rune, name string) (kss.Glyph, error) {
	g, err := f.AddGlyph(codepoint, name)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// AddGlyph creates an empty glyph, as CreateGlyph does, returning it as
// a *Glyph.
func (f *Font) AddGlyph(codepoint rune, name string) (*Glyph, error) {
	if !fea.ValidGlyphName(name) {
		return nil, core.Error(core.EINVALID, "illegal glyph name %q", name)
	}
	if _, exists := f.glyphs.Get(name); exists {
		return nil, core.Error(core.EDUPLICATE, "glyph %s already exists", name)
	}
	if codepoint >= 0 {
		if other, taken := f.cmap[codepoint]; taken {
			return nil, core.Error(core.EDUPLICATE, "code point %U already mapped to %s",
				codepoint, other.name)
		}
	}
	g := &Glyph{name: name, codepoint: -1}
	if codepoint >= 0 {
		g.codepoint = codepoint
		f.cmap[codepoint] = g
	}
	f.glyphs.Put(name, g)
	f.index.Add(name, g)
	return g, nil
}

// Glyph finds a glyph by name.
func (f *Font) Glyph(name string) (kss.Glyph, bool) {
	if g, ok := f.Get(name); ok {
		return g, true
	}
	return nil, false
}

// Get finds a glyph by name.
func (f *Font) Get(name string) (*Glyph, bool) {
	g, ok := f.glyphs.Get(name)
	if !ok {
		return nil, false
	}
	return g.(*Glyph), true
}

// Lookup finds the glyph encoded for a code point.
func (f *Font) Lookup(r rune) (*Glyph, bool) {
	g, ok := f.cmap[r]
	return g, ok
}

// Size returns the number of glyphs.
func (f *Font) Size() int {
	return f.glyphs.Size()
}

// GlyphNames returns all glyph names in order of creation.
func (f *Font) GlyphNames() []string {
	names := make([]string, 0, f.glyphs.Size())
	it := f.glyphs.Iterator()
	for it.Next() {
		names = append(names, it.Key().(string))
	}
	return names
}

// GlyphsWithPrefix returns the sorted names of all glyphs starting with prefix.
//
//	GlyphsWithPrefix("uniE000.")  // variants of uniE000
func (f *Font) GlyphsWithPrefix(prefix string) []string {
	names := f.index.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// Select returns the encoded glyphs with code points in [lo…hi], in code
// point order.
func (f *Font) Select(lo, hi rune) []kss.GlyphReader {
	codepoints := make([]rune, 0, 64)
	for r := range f.cmap {
		if r >= lo && r <= hi {
			codepoints = append(codepoints, r)
		}
	}
	sort.Slice(codepoints, func(i, j int) bool { return codepoints[i] < codepoints[j] })
	selection := make([]kss.GlyphReader, len(codepoints))
	for i, r := range codepoints {
		selection[i] = f.cmap[r]
	}
	tracer().Debugf("selected %d glyphs in %U…%U", len(selection), lo, hi)
	return selection
}

// --- Metrics and metadata --------------------------------------------------

// Metrics returns the font metrics.
func (f *Font) Metrics() opentype.FontMetricsInfo {
	return f.metrics
}

// Ascent returns the ascent of the font.
func (f *Font) Ascent() float64 {
	return f.metrics.Ascent
}

// SetLineGap sets the horizontal header line gap.
func (f *Font) SetLineGap(gap int) {
	f.lineGap = gap
}

// LineGap returns the horizontal header line gap.
func (f *Font) LineGap() int {
	return f.lineGap
}

// SetNames replaces the naming metadata.
func (f *Font) SetNames(names opentype.FontNames) {
	f.names = names
}

// Names returns the naming metadata.
func (f *Font) Names() opentype.FontNames {
	return f.names
}

// --- Layout ----------------------------------------------------------------

// AddAttachmentLookup declares a mark attachment lookup. Lookup names,
// subtable names and anchor classes must be unique.
func (f *Font) AddAttachmentLookup(l opentype.AttachmentLookup) error {
	if l.Kind != opentype.MarkToBase && l.Kind != opentype.MarkToMark {
		return core.Error(core.EINVALID, "lookup %s: unsupported kind %s", l.Name, l.Kind)
	}
	for _, other := range f.lookups {
		switch {
		case other.Name == l.Name:
			return core.Error(core.EDUPLICATE, "lookup %s already exists", l.Name)
		case other.Subtable == l.Subtable:
			return core.Error(core.EDUPLICATE, "subtable %s already exists", l.Subtable)
		case other.AnchorClass == l.AnchorClass:
			return core.Error(core.EDUPLICATE, "anchor class %s already exists", l.AnchorClass)
		}
	}
	tracer().Debugf("lookup %s (%s) for feature %s, anchor class %s",
		l.Name, l.Kind, l.Feature, l.AnchorClass)
	f.lookups = append(f.lookups, l)
	return nil
}

// AttachmentLookups returns the declared attachment lookups.
func (f *Font) AttachmentLookups() []opentype.AttachmentLookup {
	return f.lookups
}

// AnchorClass returns the attachment lookup an anchor class belongs to.
func (f *Font) AnchorClass(class string) (opentype.AttachmentLookup, bool) {
	for _, l := range f.lookups {
		if l.AnchorClass == class {
			return l, true
		}
	}
	return opentype.AttachmentLookup{}, false
}

// MergeFeature reads a rule program from a file and merges it.
func (f *Font) MergeFeature(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.WrapError(err, core.EIO, "cannot read rule program %s", path)
	}
	return f.MergeProgram(string(data))
}

// MergeProgram merges a rule program given as text.
func (f *Font) MergeProgram(program string) error {
	doc, err := fea.Parse(strings.NewReader(program))
	if err != nil {
		return err
	}
	for _, name := range doc.Glyphs() {
		if _, ok := f.glyphs.Get(name); !ok {
			return core.Error(core.EMISSING, "rule program references unknown glyph %s", name)
		}
	}
	f.features = append(f.features, doc)
	f.programs = append(f.programs, program)
	tracer().Infof("merged rule program: %d classes, %d lookups, %d features",
		len(doc.ClassNames()), len(doc.Lookups), len(doc.Features))
	return nil
}

// Features returns the merged rule programs, parsed.
func (f *Font) Features() []*fea.Document {
	return f.features
}

// FeatureText returns the text of all merged rule programs.
func (f *Font) FeatureText() string {
	return strings.Join(f.programs, "\n")
}
