package fea

import (
	"strings"
	"testing"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.fea")
	defer teardown()
	//
	p := NewProgram()
	p.LanguageSystem(opentype.DFLT, opentype.Dflt)
	kss := p.Class("kss", "G1", "G2")
	l := p.Lookup("kss1", func(b *Block) {
		b.Substitute(Glyph("G1"), Glyph("G1.kss1"))
	})
	p.Feature(opentype.T("ccmp"), func(b *Block) {
		b.Chain(Via(kss, l), Marked(Glyph("uni034F")), kss)
	})
	p.Feature(opentype.T("mark"), func(b *Block) {
		b.Position(WithValue(kss, ValueRecord{YPlacement: 2240}), Repeat(kss, 0), Union(kss, Glyph("G1")))
	})
	require.NoError(t, p.Err())
	expected := `languagesystem DFLT dflt;

@kss = [G1 G2];

lookup kss1 {
    substitute G1 by G1.kss1;
} kss1;

feature ccmp {
    substitute @kss' lookup kss1 uni034F' @kss;
} ccmp;

feature mark {
    position @kss' <0 2240 0 0> [@kss G1];
} mark;
`
	assert.Equal(t, expected, p.String())
	var sb strings.Builder
	n, err := p.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(len(expected)), n)
}

func TestSequenceSubstitution(t *testing.T) {
	p := NewProgram()
	p.Feature(opentype.T("ccmp"), func(b *Block) {
		b.Substitute(Glyph("uni200B"), Glyph("uni200B.1"), Glyph("uni200B.1"))
		b.Substitute(Seq(Glyph("uni200B.1"), Glyph("uni200B.1")), Glyph("uni200B"))
	})
	require.NoError(t, p.Err())
	assert.Contains(t, p.String(), "    substitute uni200B by uni200B.1 uni200B.1;\n")
	assert.Contains(t, p.String(), "    substitute uni200B.1 uni200B.1 by uni200B;\n")
}

func TestEmptyClass(t *testing.T) {
	p := NewProgram()
	p.LanguageSystem(opentype.DFLT, opentype.Dflt)
	p.Class("kss")
	assert.Equal(t, "languagesystem DFLT dflt;\n\n@kss = [];\n", p.String())
}

func TestReferencesFromOtherProgramsAreRejected(t *testing.T) {
	other := NewProgram()
	cls := other.Class("x", "a")
	p := NewProgram()
	p.Feature(opentype.T("ccmp"), func(b *Block) {
		b.Chain(Marked(cls))
	})
	require.Error(t, p.Err())
	assert.Equal(t, core.EINVALID, core.Code(p.Err()))
	_, err := p.WriteTo(&strings.Builder{})
	assert.Error(t, err)
}

func TestInvalidPrograms(t *testing.T) {
	for name, build := range map[string]func(p *Program){
		"glyph name": func(p *Program) { p.Class("c", "has space") },
		"class twice": func(p *Program) {
			p.Class("c")
			p.Class("c")
		},
		"lookup twice": func(p *Program) {
			p.Lookup("l", nil)
			p.Lookup("l", nil)
		},
		"unregistered feature": func(p *Program) { p.Feature(opentype.T("zzzz"), nil) },
		"position in ccmp": func(p *Program) {
			p.Feature(opentype.T("ccmp"), func(b *Block) {
				b.Position(WithValue(Glyph("a"), ValueRecord{}))
			})
		},
		"substitute in mark": func(p *Program) {
			p.Feature(opentype.T("mark"), func(b *Block) {
				b.Substitute(Glyph("a"), Glyph("b"))
			})
		},
		"unmarked context": func(p *Program) {
			p.Feature(opentype.T("ccmp"), func(b *Block) {
				b.Chain(Glyph("a"), Glyph("b"))
			})
		},
		"split marks": func(p *Program) {
			p.Feature(opentype.T("ccmp"), func(b *Block) {
				b.Chain(Marked(Glyph("a")), Glyph("b"), Marked(Glyph("c")))
			})
		},
		"mixed lookup": func(p *Program) {
			p.Lookup("l", func(b *Block) {
				b.Substitute(Glyph("a"), Glyph("b"))
				b.Position(WithValue(Glyph("a"), ValueRecord{}))
			})
		},
	} {
		p := NewProgram()
		build(p)
		assert.Error(t, p.Err(), name)
	}
}

func TestFeatureKinds(t *testing.T) {
	k, err := FeatureKind(opentype.T("mkmk"))
	assert.NoError(t, err)
	assert.Equal(t, GPosTable, k)
	k, err = FeatureKind(opentype.T("ss07"))
	assert.NoError(t, err)
	assert.Equal(t, GSubTable, k)
	_, err = FeatureKind(opentype.T("ss21"))
	assert.Error(t, err)
}

func TestParseGeneratedProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.fea")
	defer teardown()
	//
	p := NewProgram()
	p.LanguageSystem(opentype.DFLT, opentype.Dflt)
	kss := p.Class("kss", "G1", "G2")
	initCls := p.Class("init", "G1.i", "G2.i")
	l := p.Lookup("i", func(b *Block) {
		b.Substitute(Glyph("G1"), Glyph("G1.i"))
		b.Substitute(Glyph("G2"), Glyph("G2.i"))
	})
	p.Feature(opentype.T("ccmp"), func(b *Block) {
		b.Chain(Union(initCls), Via(kss, l))
	})
	p.Feature(opentype.T("mark"), func(b *Block) {
		b.Position(WithValue(initCls, ValueRecord{YPlacement: -12}), kss)
	})
	require.NoError(t, p.Err())
	doc, err := Parse(strings.NewReader(p.String()))
	require.NoError(t, err)
	assert.Equal(t, []string{"DFLT dflt"}, doc.LanguageSystems)
	assert.Equal(t, []string{"kss", "init"}, doc.ClassNames())
	assert.Equal(t, []string{"i"}, doc.Lookups)
	assert.Equal(t, []opentype.Tag{opentype.T("ccmp"), opentype.T("mark")}, doc.Features)
	assert.Equal(t, 4, doc.Rules)
	assert.Equal(t, []string{"G1", "G1.i", "G2", "G2.i"}, doc.Glyphs())
	members, ok := doc.Class("init")
	assert.True(t, ok)
	assert.Equal(t, []string{"G1.i", "G2.i"}, members)
}

func TestParseRejectsForwardReferences(t *testing.T) {
	for _, src := range []string{
		"feature ccmp {\n    substitute @later' lookup x;\n} ccmp;\n@later = [a];\n",
		"@c = [a];\nfeature ccmp {\n    substitute @c' lookup later;\n} ccmp;\nlookup later {\n    substitute a by b;\n} later;\n",
		"@c = [@d];\n",
		"lookup x {\n    substitute a by b;\n} y;\n",
		"feature ccmp {\n    substitute a by b;\n",
		"table GDEF {\n} GDEF;\n",
	} {
		_, err := Parse(strings.NewReader(src))
		assert.Error(t, err, src)
		assert.Equal(t, core.EINVALID, core.Code(err))
	}
}

func TestParseCommentsAndNestedClasses(t *testing.T) {
	src := `# header comment
languagesystem DFLT dflt; # trailing
@a = [x y];
@b = [@a z];
lookup l {
    lookupflag IgnoreMarks;
    sub x by \y;
} l;
feature calt {
    script DFLT;
    lookup l;
    pos @b' <0 -5 0 0> x;
} calt;
`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	members, _ := doc.Class("b")
	assert.Equal(t, []string{"x", "y", "z"}, members)
	assert.Equal(t, []string{"x", "y", "z"}, doc.Glyphs())
	assert.Equal(t, 2, doc.Rules)
}
