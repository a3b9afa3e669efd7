/*
Package kss augments a font with stacked cluster forms for Khitan Small Script.

Khitan Small Script writes the characters of a word in clusters, stacked
two by two in rows. Fonts usually only carry the nominal, full-size form
of each character. Package kss derives a fixed cascade of smaller variants
for every nominal glyph and synthesizes an OpenType rule program which lets
a shaping engine select the variants and stack them.

For a nominal glyph G, five variants are derived:

	G.kss1init   first character of a cluster, full width
	G.kss1       continuation below a full-width character
	G.kss2init   first character of a cluster, half width
	G.kss2       continuation, half width, left column
	G.kss3       continuation, half width, right column

Initial variants are spacing base glyphs, continuation variants are
zero-width marks attached by anchors. Every variant is compressed
vertically and aligned with the top edge of the nominal glyph.

The transform cascade is a Table of TransformRules. A Deriver applies the
table to nominal glyphs, Synthesize produces the rule program, and Augment
runs the whole process against a FontBuilder.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package kss

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'kss.engine'
func tracer() tracing.Trace {
	return tracing.Select("kss.engine")
}
