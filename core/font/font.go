/*
Package font is for loading the fonts to augment.

A "scalable font" is a font file, i.e. a variant of a typeface with a
certain weight, slant, etc. Fonts may be given as a file path or as the
name of a font installed on the system.

Fonts are read with golang.org/x/image/font/sfnt. System fonts are
located with flopp/go-findfont, and loaded fonts are cached by name.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'kss.fonts'
func tracer() tracing.Trace {
	return tracing.Select("kss.fonts")
}

// ScalableFont is a parsed font file.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont reads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EIO, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses font data.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// ResolveFont loads a font given either as a path or as the name of a
// system font. Fonts are cached in the global registry.
func ResolveFont(name string) (*ScalableFont, error) {
	if f, ok := GlobalRegistry().Font(name); ok {
		return f, nil
	}
	fpath := name
	if _, err := os.Stat(name); err != nil {
		if fpath, err = findfont.Find(name); err != nil || fpath == "" {
			return nil, core.WrapError(err, core.EMISSING, "font not found: %s", name)
		}
		tracer().Debugf("%s is a system font at %s", name, fpath)
	}
	f, err := LoadOpenTypeFont(fpath)
	if err != nil {
		return nil, err
	}
	if f.Fontname == "" {
		f.Fontname = strings.TrimSuffix(filepath.Base(fpath), filepath.Ext(fpath))
	}
	GlobalRegistry().StoreFont(name, f)
	return f, nil
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font which is always present. Currently we use
// Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// --- Font Registry ---------------------------------------------------------

// Registry caches loaded fonts by normalized name.
type Registry struct {
	sync.Mutex
	fonts map[string]*ScalableFont
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is the registry used by ResolveFont.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fonts: make(map[string]*ScalableFont)}
}

// StoreFont stores a font under a name.
func (fr *Registry) StoreFont(name string, f *ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fname := NormalizeFontname(name)
	tracer().Debugf("registry stores font %s as %s", f.Fontname, fname)
	fr.fonts[fname] = f
}

// Font finds a font by name.
func (fr *Registry) Font(name string) (*ScalableFont, bool) {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[NormalizeFontname(name)]
	return f, ok
}

// NormalizeFontname lower-cases a font name or path and strips directory,
// extension and blanks.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(filepath.Base(fname))
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	return strings.ToLower(fname)
}
