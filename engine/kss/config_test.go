package kss_test

import (
	"testing"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/engine/kss"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	conf := kss.DefaultConfig()
	require.NoError(t, conf.Validate())
	assert.Equal(t, 0.8, conf.VerticalCompression)
	assert.Equal(t, 0.04, conf.IntraClusterGap)
	assert.Equal(t, 3, conf.MaxExtraRows)
	assert.Equal(t, rune(0xE000), conf.FirstCodePoint)
	assert.Equal(t, rune(0xF8FF), conf.LastCodePoint)
	assert.Equal(t, "Khitan Small Stacked", conf.Names.Family)
}

func TestRowOffsets(t *testing.T) {
	conf := kss.DefaultConfig()
	assert.Equal(t, 2240, conf.RowOffset(3, 800))
	assert.Equal(t, 1440, conf.RowOffset(2, 800))
	assert.Equal(t, 640, conf.RowOffset(1, 800))
	assert.Equal(t, 2240, conf.LineGap(800))
	assert.Equal(t, 2800, conf.LineGap(1000))
}

func TestConfigFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.engine")
	defer teardown()
	//
	conf, err := kss.ConfigFrom(testconfig.Conf{
		"kss.vertical-compression": 0.75,
		"kss.intra-cluster-gap":    "0.05",
		"kss.max-extra-rows":       2,
		"kss.first-codepoint":      "U+18B00",
		"kss.last-codepoint":       "0x18CFF",
		"font.family":              "Khitan Test",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.75, conf.VerticalCompression)
	assert.Equal(t, 0.05, conf.IntraClusterGap)
	assert.Equal(t, 2, conf.MaxExtraRows)
	assert.Equal(t, rune(0x18B00), conf.FirstCodePoint)
	assert.Equal(t, rune(0x18CFF), conf.LastCodePoint)
	assert.Equal(t, "Khitan Test", conf.Names.Family)
	assert.Equal(t, "1.000", conf.Names.Version, "unset keys keep their defaults")
}

func TestInvalidConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.engine")
	defer teardown()
	//
	for _, c := range []testconfig.Conf{
		{"kss.vertical-compression": "much"},
		{"kss.vertical-compression": 1.5},
		{"kss.intra-cluster-gap": -0.1},
		{"kss.max-extra-rows": 0},
		{"kss.first-codepoint": "F8FF", "kss.last-codepoint": "E000"},
		{"kss.first-codepoint": "xyz"},
	} {
		_, err := kss.ConfigFrom(c)
		if assert.Error(t, err, "%v", c) {
			assert.Equal(t, core.EINVALID, core.Code(err))
		}
	}
}
