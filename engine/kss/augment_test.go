package kss_test

import (
	"errors"
	"os"
	"testing"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/glyphset"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/kssfont/engine/kss"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type AugmentSuite struct {
	suite.Suite
	teardown func()
	font     *glyphset.Font
	conf     kss.Config
}

func TestAugment(t *testing.T) {
	suite.Run(t, new(AugmentSuite))
}

func (s *AugmentSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "kss.engine")
	s.T().Setenv("TMPDIR", s.T().TempDir())
	s.font = testFont(s.T(), "G1", "G2")
	_, err := s.font.AddGlyph('A', "A") // outside of the selection
	s.Require().NoError(err)
	s.conf = kss.DefaultConfig()
	s.conf.FirstCodePoint, s.conf.LastCodePoint = 0xE000, 0xE0FF
}

func (s *AugmentSuite) TearDownTest() {
	s.teardown()
}

func (s *AugmentSuite) TestSingleGlyph() {
	f := testFont(s.T(), "G")
	result, err := kss.Augment(f, nil, s.conf)
	s.Require().NoError(err)
	s.Equal([]string{"G"}, result.Nominals)
	s.Equal([]string{"G.kss1init", "G.kss1", "G.kss2init", "G.kss2", "G.kss3"}, result.Variants)
	s.Require().Len(f.Features(), 1)
	doc := f.Features()[0]
	s.Len(doc.Lookups, 5)
	s.Equal(5+7+6, doc.Rules)
}

func (s *AugmentSuite) TestFullRun() {
	result, err := kss.Augment(s.font, nil, s.conf)
	s.Require().NoError(err)
	s.Equal([]string{"G1", "G2"}, result.Nominals)
	s.Len(result.Variants, 10)
	for _, v := range result.Variants {
		_, ok := s.font.Get(v)
		s.True(ok, v)
	}
	s.Empty(s.font.GlyphsWithPrefix("A."), "glyphs outside of the selection stay untouched")
	s.Equal(2240, result.LineGap)
	s.Equal(2240, s.font.LineGap())
	s.Equal(result.Program, s.font.FeatureText())
	members, ok := s.font.Features()[0].Class("kss2init")
	s.True(ok)
	s.Equal([]string{"G1.kss2init", "G2.kss2init"}, members)
	entries, err := os.ReadDir(os.TempDir())
	s.Require().NoError(err)
	s.Empty(entries, "temporary rule program is removed")
}

func (s *AugmentSuite) TestControlGlyphs() {
	_, err := kss.Augment(s.font, nil, s.conf)
	s.Require().NoError(err)
	for name, class := range map[string]opentype.GlyphClass{
		kss.CGJ:       opentype.MarkGlyph,
		kss.ZWSP:      opentype.BaseGlyph,
		kss.ZWSPSplit: opentype.BaseGlyph,
	} {
		g, ok := s.font.Get(name)
		s.Require().True(ok, name)
		s.Equal(class, g.Class(), name)
		s.Equal(0.0, g.Width(), name)
		s.True(g.Bounds().Empty(), name)
	}
	cgj, ok := s.font.Lookup(0x034F)
	s.Require().True(ok)
	s.Equal(kss.CGJ, cgj.Name())
	zwsp, ok := s.font.Lookup(0x200B)
	s.Require().True(ok)
	s.Equal(kss.ZWSP, zwsp.Name())
}

func (s *AugmentSuite) TestExistingControlGlyphsAreReused() {
	g, err := s.font.AddGlyph(0x200B, kss.ZWSP)
	s.Require().NoError(err)
	g.SetWidth(200)
	_, err = kss.Augment(s.font, nil, s.conf)
	s.Require().NoError(err)
	zwsp, _ := s.font.Get(kss.ZWSP)
	s.Same(g, zwsp)
	s.Equal(0.0, zwsp.Width())
}

func (s *AugmentSuite) TestAttachmentLookupsAndNames() {
	_, err := kss.Augment(s.font, nil, s.conf)
	s.Require().NoError(err)
	lookups := s.font.AttachmentLookups()
	s.Require().Len(lookups, 2)
	s.Equal("'mkmk'", lookups[0].Name)
	s.Equal(opentype.MarkToMark, lookups[0].Kind)
	s.Equal(kss.ClusterNext, lookups[0].AnchorClass)
	s.Equal("'mark'-1", lookups[1].Subtable)
	s.Equal(opentype.MarkToBase, lookups[1].Kind)
	s.Equal(kss.ClusterInit, lookups[1].AnchorClass)
	names := s.font.Names()
	s.Equal("Khitan Small Stacked", names.Family)
	s.Equal("KhitanSmallStacked", names.FontName)
	s.NotEmpty(names.LicenseURL)
}

func (s *AugmentSuite) TestCollisionLeavesFontUntouched() {
	_, err := s.font.AddGlyph(-1, "G2.kss2")
	s.Require().NoError(err)
	size := s.font.Size()
	_, err = kss.Augment(s.font, nil, s.conf)
	s.Equal(core.EDUPLICATE, core.Code(err))
	s.Equal(size, s.font.Size())
	s.Empty(s.font.AttachmentLookups())
	s.Equal(0, s.font.LineGap())
	s.Empty(s.font.Features())
}

func (s *AugmentSuite) TestInvalidConfig() {
	s.conf.MaxExtraRows = 0
	_, err := kss.Augment(s.font, nil, s.conf)
	s.Equal(core.EINVALID, core.Code(err))
	s.Equal(3, s.font.Size())
}

func (s *AugmentSuite) TestEmptySelection() {
	s.conf.FirstCodePoint, s.conf.LastCodePoint = 0xF000, 0xF0FF
	result, err := kss.Augment(s.font, nil, s.conf)
	s.Require().NoError(err)
	s.Empty(result.Nominals)
	s.Empty(result.Variants)
	s.Equal("languagesystem DFLT dflt;\n\n@kss = [];\n", s.font.FeatureText())
}

// failingHost is a font which refuses to merge rule programs.
type failingHost struct {
	*glyphset.Font
}

func (h failingHost) MergeFeature(path string) error {
	return core.WrapError(errors.New("disk full"), core.EIO, "cannot merge %s", path)
}

func (s *AugmentSuite) TestMergeFailure() {
	_, err := kss.Augment(failingHost{s.font}, nil, s.conf)
	s.Equal(core.EIO, core.Code(err))
	entries, err := os.ReadDir(os.TempDir())
	s.Require().NoError(err)
	s.Empty(entries, "temporary rule program is removed")
}
