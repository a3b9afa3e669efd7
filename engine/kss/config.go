package kss

import (
	"strconv"
	"strings"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/opentype"
	"github.com/npillmayer/schuko"
)

// Configuration keys.
const (
	KeyVerticalCompression = "kss.vertical-compression"
	KeyIntraClusterGap     = "kss.intra-cluster-gap"
	KeyMaxExtraRows        = "kss.max-extra-rows"
	KeyFirstCodePoint      = "kss.first-codepoint"
	KeyLastCodePoint       = "kss.last-codepoint"
	KeyFamily              = "font.family"
	KeyVersion             = "font.version"
)

// Config holds the parameters of an augmentation run.
type Config struct {
	VerticalCompression float64 // vertical scale of every variant
	IntraClusterGap     float64 // padding between stacked glyphs, fraction of the nominal width
	MaxExtraRows        int     // rows below the first one covered by positioning rules
	FirstCodePoint      rune    // nominal glyphs start here
	LastCodePoint       rune    // nominal glyphs end here, inclusive
	Names               opentype.FontNames
}

// DefaultConfig returns the configuration for Khitan Small Stacked.
func DefaultConfig() Config {
	return Config{
		VerticalCompression: 0.8,
		IntraClusterGap:     0.04,
		MaxExtraRows:        3,
		FirstCodePoint:      0xE000,
		LastCodePoint:       0xF8FF,
		Names: opentype.FontNames{
			Family:     "Khitan Small Stacked",
			Version:    "1.000",
			Copyright:  copyright,
			License:    license,
			LicenseURL: "http://scripts.sil.org/OFL",
		},
	}
}

const copyright = `Copyright (c) 2018, David Corbett (corbett.dav@husky.neu.edu).
Copyright (c) 2013, Andrew West (www.babelstone.co.uk).`

const license = `Copyright (c) 2018, David Corbett (corbett.dav@husky.neu.edu).
Copyright (c) 2013, Andrew West (www.babelstone.co.uk),
with Reserved Font Name BabelStone.

This Font Software is licensed under the SIL Open Font License, Version 1.1.
This license is available with a FAQ at: http://scripts.sil.org/OFL`

// ConfigFrom reads a configuration, starting from DefaultConfig.
// Keys which are not set keep their default values.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	c := DefaultConfig()
	if conf == nil {
		return c, nil
	}
	var err error
	if conf.IsSet(KeyVerticalCompression) {
		if c.VerticalCompression, err = parseFloat(conf, KeyVerticalCompression); err != nil {
			return c, err
		}
	}
	if conf.IsSet(KeyIntraClusterGap) {
		if c.IntraClusterGap, err = parseFloat(conf, KeyIntraClusterGap); err != nil {
			return c, err
		}
	}
	if conf.IsSet(KeyMaxExtraRows) {
		c.MaxExtraRows = conf.GetInt(KeyMaxExtraRows)
	}
	if conf.IsSet(KeyFirstCodePoint) {
		if c.FirstCodePoint, err = parseCodePoint(conf, KeyFirstCodePoint); err != nil {
			return c, err
		}
	}
	if conf.IsSet(KeyLastCodePoint) {
		if c.LastCodePoint, err = parseCodePoint(conf, KeyLastCodePoint); err != nil {
			return c, err
		}
	}
	if conf.IsSet(KeyFamily) {
		c.Names.Family = conf.GetString(KeyFamily)
	}
	if conf.IsSet(KeyVersion) {
		c.Names.Version = conf.GetString(KeyVersion)
	}
	tracer().Debugf("configuration: compression=%.2f, gap=%.2f, rows=%d, range=%U…%U",
		c.VerticalCompression, c.IntraClusterGap, c.MaxExtraRows, c.FirstCodePoint, c.LastCodePoint)
	return c, c.Validate()
}

func parseFloat(conf schuko.Configuration, key string) (float64, error) {
	s := strings.TrimSpace(conf.GetString(key))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "configuration %s: not a number: %q", key, s)
	}
	return f, nil
}

// parseCodePoint accepts "E000", "U+E000" and "0xE000".
func parseCodePoint(conf schuko.Configuration, key string) (rune, error) {
	s := strings.ToUpper(strings.TrimSpace(conf.GetString(key)))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "U+"), "0X")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil || n > 0x10FFFF {
		return 0, core.Error(core.EINVALID, "configuration %s: not a code point: %q", key, conf.GetString(key))
	}
	return rune(n), nil
}

// Validate checks the ranges of all parameters.
func (c Config) Validate() error {
	if c.VerticalCompression <= 0 || c.VerticalCompression > 1 {
		return core.Error(core.EINVALID, "vertical compression must be in (0,1], is %g", c.VerticalCompression)
	}
	if c.IntraClusterGap < 0 {
		return core.Error(core.EINVALID, "intra-cluster gap must not be negative, is %g", c.IntraClusterGap)
	}
	if c.MaxExtraRows < 1 {
		return core.Error(core.EINVALID, "at least one extra row required, have %d", c.MaxExtraRows)
	}
	if c.FirstCodePoint > c.LastCodePoint {
		return core.Error(core.EINVALID, "empty code point range %U…%U", c.FirstCodePoint, c.LastCodePoint)
	}
	return nil
}

// RowOffset is the vertical placement of a cluster's initial glyph when
// rows more rows follow below it.
func (c Config) RowOffset(rows int, ascent float64) int {
	return roundInt((float64(rows) - (1 - c.VerticalCompression)) * ascent)
}

// LineGap is the line gap needed to fit the deepest cluster.
func (c Config) LineGap(ascent float64) int {
	return c.RowOffset(c.MaxExtraRows, ascent)
}
