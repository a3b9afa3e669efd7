/*
Package fea writes and reads OpenType feature files.

Feature files (“.fea”) are the textual notation for OpenType layout rules,
as documented by Adobe at
https://adobe-type-tools.github.io/afdko/OpenTypeFeatureFileSpecification.html.
Package fea supports the subset needed for glyph composition: language
systems, glyph classes, named substitution lookups, contextual chaining
substitutions and contextual single positioning.

Programs are built with typed references. Classes and lookups return
references when they are declared, and statements may only use
references declared earlier in the same program. A program therefore
never refers to an undefined class or lookup.

	prog := fea.NewProgram()
	prog.LanguageSystem(opentype.DFLT, opentype.Dflt)
	cls := prog.Class("kss", "uniE000", "uniE001")
	lookup := prog.Lookup("kss1", func(b *fea.Block) {
	    b.Substitute(fea.Glyph("uniE000"), fea.Glyph("uniE000.kss1"))
	})
	prog.Feature(opentype.T("ccmp"), func(b *fea.Block) {
	    b.Chain(fea.Via(cls, lookup), cls)
	})

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fea

import (
	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'kss.fea'
func tracer() tracing.Trace {
	return tracing.Select("kss.fea")
}

func errInvalid(format string, v ...interface{}) error {
	return core.Error(core.EINVALID, "feature file: "+format, v...)
}
