package kss_test

import (
	"testing"

	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/engine/kss"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleNames(rules []kss.TransformRule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

func TestStandardTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.engine")
	defer teardown()
	//
	table := kss.StandardTable()
	order := []string{"kss1init", "kss1", "kss2init", "kss2", "kss3"}
	assert.Equal(t, order, ruleNames(table.Rules()))
	assert.Equal(t, order, ruleNames(table.DerivationOrder()))
	assert.Equal(t, "kss2", table.ByRole(kss.HalfContinuation).Name)
	r, ok := table.Rule("kss3")
	require.True(t, ok)
	assert.Equal(t, "kss1", r.Source)
	_, ok = table.Rule("kss4")
	assert.False(t, ok)
}

func TestDerivationOrderPutsSourcesFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.engine")
	defer teardown()
	//
	rules := kss.StandardRules()
	// move the dependent rules to the front of the table
	reordered := []kss.TransformRule{rules[4], rules[3], rules[0], rules[1], rules[2]}
	table, err := kss.NewTable(reordered...)
	require.NoError(t, err)
	assert.Equal(t, []string{"kss3", "kss2", "kss1init", "kss1", "kss2init"}, ruleNames(table.Rules()))
	assert.Equal(t, []string{"kss1init", "kss1", "kss2init", "kss3", "kss2"}, ruleNames(table.DerivationOrder()))
}

func TestInvalidTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kss.engine")
	defer teardown()
	//
	for name, tc := range map[string]struct {
		modify func(rules []kss.TransformRule) []kss.TransformRule
		code   int
	}{
		"cycle": {func(r []kss.TransformRule) []kss.TransformRule {
			r[1].Source = "kss3"
			return r
		}, core.EINVALID},
		"undefined source": {func(r []kss.TransformRule) []kss.TransformRule {
			r[3].Source = "kss9"
			return r
		}, core.EMISSING},
		"own source": {func(r []kss.TransformRule) []kss.TransformRule {
			r[0].Source = "kss1init"
			return r
		}, core.EINVALID},
		"duplicate name": {func(r []kss.TransformRule) []kss.TransformRule {
			r[4].Name = "kss2"
			return r
		}, core.EINVALID},
		"missing role": {func(r []kss.TransformRule) []kss.TransformRule {
			return r[:4]
		}, core.EMISSING},
		"shared role": {func(r []kss.TransformRule) []kss.TransformRule {
			r[4].Role = kss.HalfContinuation
			return r
		}, core.EINVALID},
		"illegal name": {func(r []kss.TransformRule) []kss.TransformRule {
			r[0].Name = "kss 1"
			return r
		}, core.EINVALID},
		"bad scale": {func(r []kss.TransformRule) []kss.TransformRule {
			r[2].ScaleX = 0
			return r
		}, core.EINVALID},
	} {
		_, err := kss.NewTable(tc.modify(kss.StandardRules())...)
		if assert.Error(t, err, name) {
			assert.Equal(t, tc.code, core.Code(err), name)
		}
	}
}
