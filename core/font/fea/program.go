package fea

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/npillmayer/kssfont/core/font/opentype"
)

var (
	glyphNamePattern = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.\-]{0,62}$`)
	identPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]{0,62}$`)
)

// ValidGlyphName is a predicate: may name be used as a glyph name in a
// feature file?
func ValidGlyphName(name string) bool {
	return glyphNamePattern.MatchString(name)
}

// Program is a feature file under construction.
//
// Errors are sticky: the first invalid declaration or statement is recorded
// and reported by Err and WriteTo. Subsequent calls are still recorded, but
// the program as a whole is unusable.
type Program struct {
	stmts   []string
	classes map[string]bool
	lookups map[string]bool
	err     error
}

// NewProgram creates an empty feature program.
func NewProgram() *Program {
	return &Program{
		classes: make(map[string]bool),
		lookups: make(map[string]bool),
	}
}

// ClassRef references a glyph class declared in a program.
type ClassRef struct {
	name string
	prog *Program
}

// Name returns the class name without the leading '@'.
func (c ClassRef) Name() string {
	return c.name
}

func (c ClassRef) render(p *Program) (string, error) {
	if c.prog == nil {
		return "", errInvalid("reference to undeclared class")
	}
	if c.prog != p {
		return "", errInvalid("class @%s belongs to another program", c.name)
	}
	return "@" + c.name, nil
}

// LookupRef references a named lookup declared in a program.
type LookupRef struct {
	name string
	prog *Program
}

// Name returns the name of the lookup.
func (l LookupRef) Name() string {
	return l.name
}

func (l LookupRef) check(p *Program) error {
	if l.prog == nil {
		return errInvalid("reference to undeclared lookup")
	}
	if l.prog != p {
		return errInvalid("lookup %s belongs to another program", l.name)
	}
	return nil
}

func (p *Program) fail(err error) {
	if p.err == nil {
		tracer().Errorf("%v", err)
		p.err = err
	}
}

// Err returns the first error which occurred while building p.
func (p *Program) Err() error {
	return p.err
}

// LanguageSystem declares a script/language pair.
func (p *Program) LanguageSystem(script, lang opentype.Tag) {
	p.stmts = append(p.stmts, fmt.Sprintf("languagesystem %s %s;\n",
		strings.TrimSpace(script.String()), strings.TrimSpace(lang.String())))
}

// Class declares a named glyph class. Members are glyph names.
func (p *Program) Class(name string, members ...string) ClassRef {
	ref := ClassRef{name: name, prog: p}
	if !identPattern.MatchString(name) {
		p.fail(errInvalid("illegal class name @%s", name))
		return ref
	}
	if p.classes[name] {
		p.fail(errInvalid("class @%s declared twice", name))
		return ref
	}
	for _, m := range members {
		if !ValidGlyphName(m) {
			p.fail(errInvalid("illegal glyph name '%s' in class @%s", m, name))
			return ref
		}
	}
	p.classes[name] = true
	p.stmts = append(p.stmts, fmt.Sprintf("@%s = [%s];\n", name, strings.Join(members, " ")))
	return ref
}

// Lookup declares a named lookup. Its statements are added by body.
func (p *Program) Lookup(name string, body func(*Block)) LookupRef {
	ref := LookupRef{name: name, prog: p}
	if !identPattern.MatchString(name) {
		p.fail(errInvalid("illegal lookup name %s", name))
		return ref
	}
	if p.lookups[name] {
		p.fail(errInvalid("lookup %s declared twice", name))
		return ref
	}
	b := &Block{prog: p, owner: "lookup " + name}
	if body != nil {
		body(b)
	}
	p.lookups[name] = true
	tracer().Debugf("lookup %s with %d rules", name, len(b.lines))
	p.stmts = append(p.stmts, b.wrap("lookup", name))
	return ref
}

// Feature adds a feature block for a registered feature tag.
func (p *Program) Feature(tag opentype.Tag, body func(*Block)) {
	kind, err := FeatureKind(tag)
	if err != nil {
		p.fail(errInvalid("%v", err))
		return
	}
	b := &Block{prog: p, owner: "feature " + tag.String(), kind: kind}
	if body != nil {
		body(b)
	}
	p.stmts = append(p.stmts, b.wrap("feature", tag.String()))
}

// String returns the text of the program. Statements are separated by
// empty lines.
func (p *Program) String() string {
	return strings.Join(p.stmts, "\n")
}

// WriteTo writes the program text to w. If the program is erroneous,
// nothing is written and the recorded error is returned.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}

// --- Blocks ----------------------------------------------------------------

// Block collects the rules of a lookup or feature.
type Block struct {
	prog  *Program
	owner string
	kind  TableKind
	lines []string
}

func (b *Block) wrap(keyword, name string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s {\n", keyword, name))
	for _, line := range b.lines {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("} %s;\n", name))
	return sb.String()
}

func (b *Block) requireTable(kind TableKind) bool {
	if b.kind == AnyTable {
		b.kind = kind
		return true
	}
	if b.kind != kind {
		b.prog.fail(errInvalid("%s cannot hold %s rules", b.owner, kind))
		return false
	}
	return true
}

// Substitute adds a plain substitution rule
//
//	substitute target by replacement;
//
// where target may be a sequence of glyphs (a ligature substitution) and
// replacement may be a sequence (a multiple substitution).
func (b *Block) Substitute(target Item, replacement ...Item) {
	if !b.requireTable(GSubTable) {
		return
	}
	if len(replacement) == 0 {
		b.prog.fail(errInvalid("%s: substitution without replacement", b.owner))
		return
	}
	t, marks, err := renderAll(b.prog, target)
	if err == nil && marks > 0 {
		err = errInvalid("%s: marked glyphs in plain substitution", b.owner)
	}
	if err != nil {
		b.prog.fail(err)
		return
	}
	r, marks, err := renderAll(b.prog, replacement...)
	if err == nil && marks > 0 {
		err = errInvalid("%s: marked glyphs in replacement", b.owner)
	}
	if err != nil {
		b.prog.fail(err)
		return
	}
	b.lines = append(b.lines, fmt.Sprintf("substitute %s by %s;", t, r))
}

// Chain adds a contextual substitution rule. At least one item has to be
// marked, and marked items have to be adjacent.
//
//	substitute backtrack input' lookup L lookahead;
func (b *Block) Chain(items ...Item) {
	if !b.requireTable(GSubTable) {
		return
	}
	b.contextual("substitute", items)
}

// Position adds a contextual positioning rule. At least one item has to be
// marked, usually carrying a value record.
//
//	position backtrack input' <0 2240 0 0> lookahead;
func (b *Block) Position(items ...Item) {
	if !b.requireTable(GPosTable) {
		return
	}
	b.contextual("position", items)
}

func (b *Block) contextual(keyword string, items []Item) {
	first, last := -1, -1
	for i, it := range items {
		if isMarked(it) {
			if first < 0 {
				first = i
			} else if last != i-1 {
				b.prog.fail(errInvalid("%s: marked glyphs must be adjacent", b.owner))
				return
			}
			last = i
		}
	}
	if first < 0 {
		b.prog.fail(errInvalid("%s: contextual rule without marked glyphs", b.owner))
		return
	}
	s, _, err := renderAll(b.prog, items...)
	if err != nil {
		b.prog.fail(err)
		return
	}
	b.lines = append(b.lines, fmt.Sprintf("%s %s;", keyword, s))
}
