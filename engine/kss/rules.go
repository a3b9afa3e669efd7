package kss

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	kcore "github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/opentype"
)

// WidthPolicy determines the advance width of a derived glyph.
type WidthPolicy uint8

const (
	NominalWidth WidthPolicy = iota // spacing base glyph, width of the nominal glyph
	ZeroWidth                       // combining mark
)

// Class is the glyph class which goes with a width policy.
func (w WidthPolicy) Class() opentype.GlyphClass {
	if w == ZeroWidth {
		return opentype.MarkGlyph
	}
	return opentype.BaseGlyph
}

// Role is the position a rule's variants take in a cluster. The rule
// program refers to rules by role.
type Role uint8

const (
	NoRole           Role = iota
	WideInit              // first glyph of a cluster, followed by a full-width row
	Continuation          // full-width glyph below another glyph
	HalfInit              // first glyph of a cluster, followed by half-width rows
	HalfContinuation      // left half of a row
	HalfTail              // right half of a row
)

var allRoles = []Role{WideInit, Continuation, HalfInit, HalfContinuation, HalfTail}

func (r Role) String() string {
	switch r {
	case WideInit:
		return "wide-init"
	case Continuation:
		return "continuation"
	case HalfInit:
		return "half-init"
	case HalfContinuation:
		return "half-continuation"
	case HalfTail:
		return "half-tail"
	}
	return "none"
}

// AnchorX selects the horizontal position of an anchor.
type AnchorX uint8

const (
	AtOrigin       AnchorX = iota // x = 0
	AtNominalWidth                // x = advance width of the nominal glyph
)

// AnchorY selects the vertical position of an anchor.
type AnchorY uint8

const (
	BelowBottom AnchorY = iota // bottom edge of the variant, minus the gap
	AboveTop                   // top edge of the variant, plus the gap
	AtBaseline                 // y = 0
	AtAscent                   // y = font ascent
)

// AnchorSpec declares an anchor point of a rule's variants.
type AnchorSpec struct {
	Class string
	Kind  opentype.AnchorKind
	X     AnchorX
	Y     AnchorY
}

// TransformRule describes how one variant is derived.
//
// The outline of the source glyph is transformed in this order:
// a shift left by the source's advance width if the rule is a continuation;
// a scale to ScaleX horizontally and the configured vertical compression;
// the Recenter shifts, each a fraction of the nominal width; finally a
// vertical shift aligning the top edge with the nominal glyph's top edge.
//
// Scales are relative to the nominal glyph. If the source is another
// variant, only the scale still missing is applied.
type TransformRule struct {
	Name         string
	Role         Role
	Source       string // name of the rule providing the input shape; empty for the nominal glyph
	Continuation bool
	ScaleX       float64
	Recenter     []float64
	Width        WidthPolicy
	Anchors      []AnchorSpec
}

// Anchor classes of the attachment lookups.
const (
	ClusterInit = "cluster-init"
	ClusterNext = "cluster-next"
)

// StandardRules returns the rules for Khitan Small Script clusters.
func StandardRules() []TransformRule {
	return []TransformRule{
		{
			Name: "kss1init", Role: WideInit, ScaleX: 1, Width: NominalWidth,
			Anchors: []AnchorSpec{
				{ClusterInit, opentype.BaseAnchor, AtNominalWidth, BelowBottom},
			},
		},
		{
			Name: "kss1", Role: Continuation, Continuation: true, ScaleX: 1, Width: ZeroWidth,
			Anchors: []AnchorSpec{
				{ClusterNext, opentype.BaseMarkAnchor, AtOrigin, BelowBottom},
				{ClusterNext, opentype.MarkAnchor, AtOrigin, AboveTop},
				{ClusterInit, opentype.MarkAnchor, AtOrigin, AboveTop},
			},
		},
		{
			Name: "kss2init", Role: HalfInit, ScaleX: 0.5, Width: NominalWidth,
			Anchors: []AnchorSpec{
				{ClusterInit, opentype.BaseAnchor, AtNominalWidth, AtBaseline},
			},
		},
		{
			Name: "kss2", Role: HalfContinuation, Source: "kss1", Continuation: true,
			ScaleX: 0.5, Recenter: []float64{-0.5}, Width: ZeroWidth,
			Anchors: []AnchorSpec{
				{ClusterNext, opentype.BaseMarkAnchor, AtOrigin, AtBaseline},
				{ClusterNext, opentype.MarkAnchor, AtOrigin, AtAscent},
				{ClusterInit, opentype.MarkAnchor, AtOrigin, AtAscent},
			},
		},
		{
			Name: "kss3", Role: HalfTail, Source: "kss1", Continuation: true,
			ScaleX: 0.5, Width: ZeroWidth,
			Anchors: []AnchorSpec{
				{ClusterNext, opentype.BaseMarkAnchor, AtOrigin, AtBaseline},
				{ClusterNext, opentype.MarkAnchor, AtOrigin, AtBaseline},
				{ClusterInit, opentype.MarkAnchor, AtOrigin, AtBaseline},
			},
		},
	}
}

// --- Tables ----------------------------------------------------------------

// Table is a validated set of transform rules.
type Table struct {
	rules []TransformRule
	index map[string]int
	order []int // derivation order, indices into rules
}

var ruleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewTable validates rules and establishes their derivation order.
//
// Rule names have to be unique identifiers, every source has to name
// another rule of the table, source dependencies must not form a cycle,
// and every role has to be taken by exactly one rule.
func NewTable(rules ...TransformRule) (*Table, error) {
	t := &Table{
		rules: append([]TransformRule(nil), rules...),
		index: make(map[string]int, len(rules)),
	}
	roles := make(map[Role]string)
	for i, r := range t.rules {
		if !ruleNamePattern.MatchString(r.Name) {
			return nil, kcore.Error(kcore.EINVALID, "illegal rule name %q", r.Name)
		}
		if _, dup := t.index[r.Name]; dup {
			return nil, kcore.Error(kcore.EINVALID, "rule %s declared twice", r.Name)
		}
		if r.ScaleX <= 0 || r.ScaleX > 1 {
			return nil, kcore.Error(kcore.EINVALID, "rule %s: horizontal scale %g out of range", r.Name, r.ScaleX)
		}
		if r.Role == NoRole {
			return nil, kcore.Error(kcore.EINVALID, "rule %s has no role", r.Name)
		}
		if other, dup := roles[r.Role]; dup {
			return nil, kcore.Error(kcore.EINVALID, "rules %s and %s share role %s", other, r.Name, r.Role)
		}
		roles[r.Role] = r.Name
		t.index[r.Name] = i
	}
	for _, role := range allRoles {
		if _, ok := roles[role]; !ok {
			return nil, kcore.Error(kcore.EMISSING, "no rule for role %s", role)
		}
	}
	g := core.NewGraph(core.WithDirected(true))
	for _, r := range t.rules {
		if err := g.AddVertex(r.Name); err != nil {
			return nil, kcore.WrapError(err, kcore.EINTERNAL, "rule %s", r.Name)
		}
	}
	for _, r := range t.rules {
		if r.Source == "" {
			continue
		}
		if _, ok := t.index[r.Source]; !ok {
			return nil, kcore.Error(kcore.EMISSING, "rule %s: undefined source %s", r.Name, r.Source)
		}
		if r.Source == r.Name {
			return nil, kcore.Error(kcore.EINVALID, "rule %s is its own source", r.Name)
		}
		if _, err := g.AddEdge(r.Source, r.Name, 0); err != nil {
			return nil, kcore.WrapError(err, kcore.EINTERNAL, "rule %s", r.Name)
		}
	}
	sorted, err := dfs.TopologicalSort(g)
	if err != nil {
		if errors.Is(err, dfs.ErrCycleDetected) {
			return nil, kcore.WrapError(err, kcore.EINVALID, "rule sources form a cycle")
		}
		return nil, kcore.WrapError(err, kcore.EINTERNAL, "cannot order rules")
	}
	// depth of a rule is the length of its source chain; sources come first
	depth := make([]int, len(t.rules))
	for _, name := range sorted {
		i := t.index[name]
		if src := t.rules[i].Source; src != "" {
			depth[i] = depth[t.index[src]] + 1
		}
	}
	t.order = make([]int, len(t.rules))
	for i := range t.order {
		t.order[i] = i
	}
	sort.SliceStable(t.order, func(a, b int) bool {
		return depth[t.order[a]] < depth[t.order[b]]
	})
	tracer().Debugf("transform rules in derivation order: %v", t.names(t.order))
	return t, nil
}

// StandardTable returns the table of StandardRules.
func StandardTable() *Table {
	t, err := NewTable(StandardRules()...)
	if err != nil {
		panic(fmt.Sprintf("standard transform table is invalid: %v", err))
	}
	return t
}

func (t *Table) names(indices []int) []string {
	names := make([]string, len(indices))
	for i, x := range indices {
		names[i] = t.rules[x].Name
	}
	return names
}

// Rules returns the rules in table order.
func (t *Table) Rules() []TransformRule {
	return append([]TransformRule(nil), t.rules...)
}

// DerivationOrder returns the rules ordered such that every rule comes
// after its source. Apart from that, table order is kept.
func (t *Table) DerivationOrder() []TransformRule {
	rules := make([]TransformRule, len(t.order))
	for i, x := range t.order {
		rules[i] = t.rules[x]
	}
	return rules
}

// Rule finds a rule by name.
func (t *Table) Rule(name string) (TransformRule, bool) {
	i, ok := t.index[name]
	if !ok {
		return TransformRule{}, false
	}
	return t.rules[i], true
}

// ByRole returns the rule taking a role. Every role is taken in a valid table.
func (t *Table) ByRole(role Role) TransformRule {
	for _, r := range t.rules {
		if r.Role == role {
			return r
		}
	}
	panic(fmt.Sprintf("transform table has no rule for role %s", role))
}

// DerivedName is the glyph name of the variant of a nominal glyph.
func DerivedName(nominal, rule string) string {
	return nominal + "." + rule
}

func roundInt(x float64) int {
	return int(math.Round(x))
}
