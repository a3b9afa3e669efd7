package fea

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/kssfont/core/font/opentype"
)

// TableKind denotes the layout table a feature is implemented in.
type TableKind uint8

const (
	AnyTable  TableKind = 0
	GSubTable TableKind = 1
	GPosTable TableKind = 2
)

func (k TableKind) String() string {
	switch k {
	case GSubTable:
		return "GSUB"
	case GPosTable:
		return "GPOS"
	}
	return "any"
}

// FeatureKind returns the table a registered feature tag belongs to.
// Features 'cv01'–'cv99' and 'ss01'–'ss20' are substitution features.
// For unregistered tags an error is returned.
func FeatureKind(tag opentype.Tag) (TableKind, error) {
	if k, ok := registeredFeatureTags[tag]; ok {
		return k, nil
	}
	s := tag.String()
	if n, err := strconv.Atoi(s[2:]); err == nil {
		if s[:2] == "cv" && n >= 1 && n <= 99 {
			return GSubTable, nil
		}
		if s[:2] == "ss" && n >= 1 && n <= 20 {
			return GSubTable, nil
		}
	}
	return AnyTable, fmt.Errorf("feature tag '%s' is not registered", s)
}

// registeredFeatureTags is a list of all the layout features registered at
// https://docs.microsoft.com/en-us/typography/opentype/spec/featurelist.
//
// Some features are not strictly required to exclusively be in GSUB or GPOS;
// they are listed with the table they are usually found in.
var registeredFeatureTags = map[opentype.Tag]TableKind{
	opentype.T("aalt"): GSubTable, // Access All Alternates
	opentype.T("abvf"): GSubTable, // Above-base Forms
	opentype.T("abvm"): GPosTable, // Above-base Mark Positioning
	opentype.T("abvs"): GSubTable, // Above-base Substitutions
	opentype.T("afrc"): GSubTable, // Alternative Fractions
	opentype.T("akhn"): GSubTable, // Akhands
	opentype.T("blwf"): GSubTable, // Below-base Forms
	opentype.T("blwm"): GPosTable, // Below-base Mark Positioning
	opentype.T("blws"): GSubTable, // Below-base Substitutions
	opentype.T("calt"): GSubTable, // Contextual Alternates
	opentype.T("case"): GSubTable, // Case-Sensitive Forms
	opentype.T("ccmp"): GSubTable, // Glyph Composition / Decomposition
	opentype.T("cfar"): GSubTable, // Conjunct Form After Ro
	opentype.T("chws"): GSubTable, // Contextual Half-width Spacing
	opentype.T("cjct"): GSubTable, // Conjunct Forms
	opentype.T("clig"): GSubTable, // Contextual Ligatures
	opentype.T("cpct"): GPosTable, // Centered CJK Punctuation
	opentype.T("cpsp"): GPosTable, // Capital Spacing
	opentype.T("cswh"): GSubTable, // Contextual Swash
	opentype.T("curs"): GPosTable, // Cursive Positioning
	opentype.T("c2pc"): GSubTable, // Petite Capitals From Capitals
	opentype.T("c2sc"): GSubTable, // Small Capitals From Capitals
	opentype.T("dist"): GPosTable, // Distances
	opentype.T("dlig"): GSubTable, // Discretionary Ligatures
	opentype.T("dnom"): GSubTable, // Denominators
	opentype.T("dtls"): GSubTable, // Dotless Forms
	opentype.T("expt"): GSubTable, // Expert Forms
	opentype.T("falt"): GSubTable, // Final Glyph on Line Alternates
	opentype.T("fin2"): GSubTable, // Terminal Forms #2
	opentype.T("fin3"): GSubTable, // Terminal Forms #3
	opentype.T("fina"): GSubTable, // Terminal Forms
	opentype.T("flac"): GSubTable, // Flattened accent forms
	opentype.T("frac"): GSubTable, // Fractions
	opentype.T("fwid"): GSubTable, // Full Widths
	opentype.T("half"): GSubTable, // Half Forms
	opentype.T("haln"): GSubTable, // Halant Forms
	opentype.T("halt"): GSubTable, // Alternate Half Widths
	opentype.T("hist"): GSubTable, // Historical Forms
	opentype.T("hkna"): GSubTable, // Horizontal Kana Alternates
	opentype.T("hlig"): GSubTable, // Historical Ligatures
	opentype.T("hngl"): GSubTable, // Hangul
	opentype.T("hojo"): GSubTable, // Hojo Kanji Forms (JIS X 0212-1990 Kanji Forms)
	opentype.T("hwid"): GSubTable, // Half Widths
	opentype.T("init"): GSubTable, // Initial Forms
	opentype.T("isol"): GSubTable, // Isolated Forms
	opentype.T("ital"): GSubTable, // Italics
	opentype.T("jalt"): GSubTable, // Justification Alternates
	opentype.T("jp78"): GSubTable, // JIS78 Forms
	opentype.T("jp83"): GSubTable, // JIS83 Forms
	opentype.T("jp90"): GSubTable, // JIS90 Forms
	opentype.T("jp04"): GSubTable, // JIS2004 Forms
	opentype.T("kern"): GPosTable, // Kerning
	opentype.T("lfbd"): GPosTable, // Left Bounds
	opentype.T("liga"): GSubTable, // Standard Ligatures
	opentype.T("ljmo"): GSubTable, // Leading Jamo Forms
	opentype.T("lnum"): GSubTable, // Lining Figures
	opentype.T("locl"): GSubTable, // Localized Forms
	opentype.T("ltra"): GSubTable, // Left-to-right alternates
	opentype.T("ltrm"): GSubTable, // Left-to-right mirrored forms
	opentype.T("mark"): GPosTable, // Mark Positioning
	opentype.T("med2"): GSubTable, // Medial Forms #2
	opentype.T("medi"): GSubTable, // Medial Forms
	opentype.T("mgrk"): GSubTable, // Mathematical Greek
	opentype.T("mkmk"): GPosTable, // Mark to Mark Positioning
	opentype.T("mset"): GSubTable, // Mark Positioning via Substitution
	opentype.T("nalt"): GSubTable, // Alternate Annotation Forms
	opentype.T("nlck"): GSubTable, // NLC Kanji Forms
	opentype.T("nukt"): GSubTable, // Nukta Forms
	opentype.T("numr"): GSubTable, // Numerators
	opentype.T("onum"): GSubTable, // Oldstyle Figures
	opentype.T("opbd"): GPosTable, // Optical Bounds
	opentype.T("ordn"): GSubTable, // Ordinals
	opentype.T("ornm"): GSubTable, // Ornaments
	opentype.T("palt"): GSubTable, // Proportional Alternate Widths
	opentype.T("pcap"): GSubTable, // Petite Capitals
	opentype.T("pkna"): GSubTable, // Proportional Kana
	opentype.T("pnum"): GSubTable, // Proportional Figures
	opentype.T("pref"): GSubTable, // Pre-Base Forms
	opentype.T("pres"): GSubTable, // Pre-base Substitutions
	opentype.T("pstf"): GSubTable, // Post-base Forms
	opentype.T("psts"): GSubTable, // Post-base Substitutions
	opentype.T("pwid"): GSubTable, // Proportional Widths
	opentype.T("qwid"): GSubTable, // Quarter Widths
	opentype.T("rand"): GSubTable, // Randomize
	opentype.T("rclt"): GSubTable, // Required Contextual Alternates
	opentype.T("rkrf"): GSubTable, // Rakar Forms
	opentype.T("rlig"): GSubTable, // Required Ligatures
	opentype.T("rphf"): GSubTable, // Reph Forms
	opentype.T("rtbd"): GPosTable, // Right Bounds
	opentype.T("rtla"): GSubTable, // Right-to-left alternates
	opentype.T("rtlm"): GSubTable, // Right-to-left mirrored forms
	opentype.T("ruby"): GSubTable, // Ruby Notation Forms
	opentype.T("rvrn"): GSubTable, // Required Variation Alternates
	opentype.T("salt"): GSubTable, // Stylistic Alternates
	opentype.T("sinf"): GSubTable, // Scientific Inferiors
	opentype.T("size"): GPosTable, // Optical size
	opentype.T("smcp"): GSubTable, // Small Capitals
	opentype.T("smpl"): GSubTable, // Simplified Forms
	opentype.T("ssty"): GSubTable, // Math script style alternates
	opentype.T("stch"): GSubTable, // Stretching Glyph Decomposition
	opentype.T("subs"): GSubTable, // Subscript
	opentype.T("sups"): GSubTable, // Superscript
	opentype.T("swsh"): GSubTable, // Swash
	opentype.T("titl"): GSubTable, // Titling
	opentype.T("tjmo"): GSubTable, // Trailing Jamo Forms
	opentype.T("tnam"): GSubTable, // Traditional Name Forms
	opentype.T("tnum"): GSubTable, // Tabular Figures
	opentype.T("trad"): GSubTable, // Traditional Forms
	opentype.T("twid"): GSubTable, // Third Widths
	opentype.T("unic"): GSubTable, // Unicase
	opentype.T("valt"): GSubTable, // Alternate Vertical Metrics
	opentype.T("vatu"): GSubTable, // Vattu Variants
	opentype.T("vchw"): GPosTable, // Vertical Contextual Half-width Spacing
	opentype.T("vert"): GSubTable, // Vertical Writing
	opentype.T("vhal"): GSubTable, // Alternate Vertical Half Metrics
	opentype.T("vjmo"): GSubTable, // Vowel Jamo Forms
	opentype.T("vkna"): GSubTable, // Vertical Kana Alternates
	opentype.T("vkrn"): GPosTable, // Vertical Kerning
	opentype.T("vpal"): GSubTable, // Proportional Alternate Vertical Metrics
	opentype.T("vrt2"): GSubTable, // Vertical Alternates and Rotation
	opentype.T("vrtr"): GSubTable, // Vertical Alternates for Rotation
	opentype.T("zero"): GSubTable, // Slashed Zero
}
