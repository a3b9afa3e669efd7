package font

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestNormalizeFont(t *testing.T) {
	assert.Equal(t, "khitan_small_stacked", NormalizeFontname(" Khitan Small Stacked "))
	assert.Equal(t, "babelstonekhitan", NormalizeFontname("/fonts/BabelStoneKhitan.ttf"))
}

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.fonts")
	defer teardown()
	//
	f := FallbackFont()
	require.NotNil(t, f.SFNT)
	assert.Equal(t, "Go Sans", f.Fontname)
	assert.True(t, f.SFNT.NumGlyphs() > 0)
}

func TestResolveFontFromPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.fonts")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "GoRegular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	f, err := ResolveFont(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Filepath)
	cached, ok := GlobalRegistry().Font(path)
	assert.True(t, ok)
	assert.Same(t, f, cached)
}

func TestResolveMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.fonts")
	defer teardown()
	//
	_, err := ResolveFont("No Such Font Anywhere 4711")
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestParseGarbage(t *testing.T) {
	_, err := ParseOpenTypeFont([]byte("not a font"))
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
