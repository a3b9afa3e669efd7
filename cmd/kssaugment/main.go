/*
Command kssaugment adds stacked cluster forms to a Khitan Small Script font.

Usage:

	kssaugment -font <path|name> [-config file.nt] [-o out.fea] [-trace level]

The font is loaded, augmented in memory and the merged rule program is
written to the output file. Configuration is read from a NestedText file,
either given by -config or located at the standard configuration locations
for application tag "kssaugment".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font"
	"github.com/npillmayer/kssfont/core/font/glyphset"
	"github.com/npillmayer/kssfont/engine/kss"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'kss.engine'
func tracer() tracing.Trace {
	return tracing.Select("kss.engine")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to augment (path or system font name)")
	confpath := flag.String("config", "", "NestedText configuration file")
	outpath := flag.String("o", "kss.fea", "Output file for the rule program")
	flag.Parse()
	pterm.Info.Println("Welcome to the KSS font augmenter")
	//
	// configuration and logging
	conf, err := loadConfig(*confpath, *tlevel)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)
	kconf, err := kss.ConfigFrom(conf)
	if err != nil {
		fail(err, 2)
	}
	//
	// load and augment the font
	if *fontname == "" {
		fail(core.Error(core.EMISSING, "no font given, use -font"), 3)
	}
	sf, err := font.ResolveFont(*fontname)
	if err != nil {
		fail(err, 3)
	}
	fb, err := glyphset.FromScalableFont(sf,
		[2]rune{kconf.FirstCodePoint, kconf.LastCodePoint},
		[2]rune{0x034F, 0x034F}, // CGJ
		[2]rune{0x200B, 0x200B}, // ZWSP
	)
	if err != nil {
		fail(err, 3)
	}
	result, err := kss.Augment(fb, nil, kconf)
	if err != nil {
		fail(err, 4)
	}
	if err := os.WriteFile(*outpath, []byte(fb.FeatureText()), 0o644); err != nil {
		fail(core.WrapError(err, core.EIO, "cannot write %s", *outpath), 5)
	}
	summary(fb, result, *outpath)
}

// loadConfig sets up a koanf configuration: defaults, the standard
// configuration locations, an explicit file if given, and trace levels.
func loadConfig(path string, tlevel string) (*koanfadapter.KConf, error) {
	conf := koanfadapter.New(koanf.New("."), "kssaugment", []string{".nt"})
	conf.InitDefaults()
	if path != "" {
		if err := conf.Koanf().Load(file.Provider(path), koanfadapter.Parser()); err != nil {
			return nil, core.WrapError(err, core.EINVALID, "cannot load configuration %s", path)
		}
	}
	for _, key := range []string{"root", "kss.engine", "kss.fonts", "kss.fea"} {
		if !conf.IsSet("trace." + key) {
			conf.Set("trace."+key, tlevel)
		}
	}
	return conf, nil
}

func fail(err error, exitcode int) {
	tracer().Errorf(err.Error())
	pterm.Error.Println(core.UserMessage(err))
	os.Exit(exitcode)
}

func summary(fb *glyphset.Font, result *kss.Result, outpath string) {
	names := fb.Names()
	rows := pterm.TableData{
		{"Property", "Value"},
		{"Font name", names.FontName},
		{"Version", names.Version},
		{"Nominal glyphs", strconv.Itoa(len(result.Nominals))},
		{"Derived glyphs", strconv.Itoa(len(result.Variants))},
		{"Glyphs in font", strconv.Itoa(fb.Size())},
		{"Line gap", strconv.Itoa(result.LineGap)},
		{"Rule program", outpath},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
	pterm.Success.Printf("augmented %s\n", names.FullName)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
