package fea

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/kssfont/core"
	"github.com/npillmayer/kssfont/core/font/opentype"
)

// Document is the result of reading a feature file.
type Document struct {
	LanguageSystems []string       // e.g., "DFLT dflt"
	Lookups         []string       // lookup names in order of declaration
	Features        []opentype.Tag // feature tags in order of appearance
	Rules           int            // number of substitution and positioning rules
	classes         *linkedhashmap.Map
	glyphs          *treeset.Set
}

// Class returns the expanded members of a named class.
func (doc *Document) Class(name string) ([]string, bool) {
	m, ok := doc.classes.Get(name)
	if !ok {
		return nil, false
	}
	return m.([]string), true
}

// ClassNames returns the class names in order of declaration.
func (doc *Document) ClassNames() []string {
	names := make([]string, 0, doc.classes.Size())
	for _, k := range doc.classes.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// Glyphs returns every glyph name the document references, sorted.
func (doc *Document) Glyphs() []string {
	names := make([]string, 0, doc.glyphs.Size())
	for _, g := range doc.glyphs.Values() {
		names = append(names, g.(string))
	}
	return names
}

// Parse reads a feature file. Classes and lookups have to be declared before
// they are referenced.
func Parse(r io.Reader) (*Document, error) {
	toks, err := tokenize(r)
	if err != nil {
		return nil, err
	}
	p := &parser{
		toks: toks,
		doc: &Document{
			classes: linkedhashmap.New(),
			glyphs:  treeset.NewWithStringComparator(),
		},
		lookups: make(map[string]bool),
	}
	for !p.atEnd() {
		if err := p.statement(); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("parsed feature file: %d classes, %d lookups, %d features, %d rules",
		p.doc.classes.Size(), len(p.doc.Lookups), len(p.doc.Features), p.doc.Rules)
	return p.doc, nil
}

// --- Tokenizer -------------------------------------------------------------

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokClass
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

func isNameChar(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '.' || r == '-')
}

func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := []rune(scanner.Text())
		for i := 0; i < len(text); {
			c := text[i]
			switch {
			case c == '#':
				i = len(text)
			case unicode.IsSpace(c):
				i++
			case strings.ContainsRune(";{}[]='<>,()", c):
				toks = append(toks, token{tokPunct, string(c), line})
				i++
			case c == '@':
				j := i + 1
				for j < len(text) && isNameChar(text[j]) {
					j++
				}
				if j == i+1 {
					return nil, errInvalid("line %d: empty class name", line)
				}
				toks = append(toks, token{tokClass, string(text[i+1 : j]), line})
				i = j
			case unicode.IsDigit(c) || (c == '-' && i+1 < len(text) && unicode.IsDigit(text[i+1])):
				j := i + 1
				for j < len(text) && unicode.IsDigit(text[j]) {
					j++
				}
				toks = append(toks, token{tokNumber, string(text[i:j]), line})
				i = j
			case isNameChar(c) || c == '\\':
				j := i + 1
				for j < len(text) && isNameChar(text[j]) {
					j++
				}
				toks = append(toks, token{tokIdent, strings.TrimPrefix(string(text[i:j]), "\\"), line})
				i = j
			default:
				return nil, errInvalid("line %d: unexpected character %q", line, c)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EIO, "cannot read feature file")
	}
	return toks, nil
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	toks    []token
	pos     int
	doc     *Document
	lookups map[string]bool
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) next() (token, error) {
	if p.atEnd() {
		line := 0
		if len(p.toks) > 0 {
			line = p.toks[len(p.toks)-1].line
		}
		return token{}, errInvalid("line %d: unexpected end of file", line)
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *parser) peek() (token, bool) {
	if p.atEnd() {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) expect(kind tokenKind, text string) (token, error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.kind != kind || (text != "" && t.text != text) {
		if text == "" {
			text = "name"
		}
		return t, errInvalid("line %d: expected %s, found '%s'", t.line, text, t.text)
	}
	return t, nil
}

func (p *parser) statement() error {
	t, err := p.next()
	if err != nil {
		return err
	}
	switch {
	case t.kind == tokClass:
		return p.classDef(t)
	case t.kind == tokIdent && t.text == "languagesystem":
		script, err := p.expect(tokIdent, "")
		if err != nil {
			return err
		}
		lang, err := p.expect(tokIdent, "")
		if err != nil {
			return err
		}
		p.doc.LanguageSystems = append(p.doc.LanguageSystems, script.text+" "+lang.text)
		_, err = p.expect(tokPunct, ";")
		return err
	case t.kind == tokIdent && t.text == "lookup":
		return p.lookupDef()
	case t.kind == tokIdent && t.text == "feature":
		return p.featureDef()
	}
	return errInvalid("line %d: unsupported statement '%s'", t.line, t.text)
}

func (p *parser) classDef(name token) error {
	if _, ok := p.doc.classes.Get(name.text); ok {
		return errInvalid("line %d: class @%s declared twice", name.line, name.text)
	}
	if _, err := p.expect(tokPunct, "="); err != nil {
		return err
	}
	if _, err := p.expect(tokPunct, "["); err != nil {
		return err
	}
	members := []string{}
	for {
		t, err := p.next()
		if err != nil {
			return err
		}
		if t.kind == tokPunct && t.text == "]" {
			break
		}
		switch t.kind {
		case tokIdent:
			p.doc.glyphs.Add(t.text)
			members = append(members, t.text)
		case tokClass:
			inner, ok := p.doc.classes.Get(t.text)
			if !ok {
				return errInvalid("line %d: class @%s used before declaration", t.line, t.text)
			}
			members = append(members, inner.([]string)...)
		default:
			return errInvalid("line %d: unexpected '%s' in class @%s", t.line, t.text, name.text)
		}
	}
	p.doc.classes.Put(name.text, members)
	_, err := p.expect(tokPunct, ";")
	return err
}

func (p *parser) lookupDef() error {
	name, err := p.expect(tokIdent, "")
	if err != nil {
		return err
	}
	if p.lookups[name.text] {
		return errInvalid("line %d: lookup %s declared twice", name.line, name.text)
	}
	if _, err = p.expect(tokPunct, "{"); err != nil {
		return err
	}
	if err = p.block(); err != nil {
		return err
	}
	if err = p.closeBlock(name.text); err != nil {
		return err
	}
	p.lookups[name.text] = true
	p.doc.Lookups = append(p.doc.Lookups, name.text)
	return nil
}

func (p *parser) featureDef() error {
	tag, err := p.expect(tokIdent, "")
	if err != nil {
		return err
	}
	if len(tag.text) > 4 {
		return errInvalid("line %d: feature tag '%s' too long", tag.line, tag.text)
	}
	if _, err := FeatureKind(opentype.T(tag.text)); err != nil {
		tracer().Infof("line %d: %v", tag.line, err)
	}
	if _, err = p.expect(tokPunct, "{"); err != nil {
		return err
	}
	if err = p.block(); err != nil {
		return err
	}
	if err = p.closeBlock(tag.text); err != nil {
		return err
	}
	p.doc.Features = append(p.doc.Features, opentype.T(tag.text))
	return nil
}

// closeBlock reads "name ;" after the closing brace.
func (p *parser) closeBlock(name string) error {
	t, err := p.expect(tokIdent, "")
	if err != nil {
		return err
	}
	if t.text != name {
		return errInvalid("line %d: block %s closed as %s", t.line, name, t.text)
	}
	_, err = p.expect(tokPunct, ";")
	return err
}

// block reads statements up to and including the closing brace.
func (p *parser) block() error {
	for {
		t, err := p.next()
		if err != nil {
			return err
		}
		if t.kind == tokPunct && t.text == "}" {
			return nil
		}
		if t.kind != tokIdent {
			return errInvalid("line %d: unexpected '%s'", t.line, t.text)
		}
		switch t.text {
		case "substitute", "sub", "position", "pos":
			if err = p.rule(); err != nil {
				return err
			}
			p.doc.Rules++
		case "lookup":
			name, err := p.expect(tokIdent, "")
			if err != nil {
				return err
			}
			if nt, ok := p.peek(); ok && nt.kind == tokPunct && nt.text == "{" {
				p.pos--
				if err = p.lookupDef(); err != nil {
					return err
				}
				continue
			}
			if !p.lookups[name.text] {
				return errInvalid("line %d: lookup %s used before declaration", name.line, name.text)
			}
			if _, err = p.expect(tokPunct, ";"); err != nil {
				return err
			}
		case "lookupflag", "script", "language":
			if err = p.skipStatement(); err != nil {
				return err
			}
		default:
			return errInvalid("line %d: unsupported statement '%s'", t.line, t.text)
		}
	}
}

// rule reads the remainder of a substitution or positioning rule, checking
// its references.
func (p *parser) rule() error {
	for {
		t, err := p.next()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokPunct:
			if t.text == ";" {
				return nil
			}
			if t.text == "{" || t.text == "}" {
				return errInvalid("line %d: unterminated rule", t.line)
			}
		case tokClass:
			if _, ok := p.doc.classes.Get(t.text); !ok {
				return errInvalid("line %d: class @%s used before declaration", t.line, t.text)
			}
		case tokIdent:
			switch t.text {
			case "by", "from", "NULL":
			case "lookup":
				name, err := p.expect(tokIdent, "")
				if err != nil {
					return err
				}
				if !p.lookups[name.text] {
					return errInvalid("line %d: lookup %s used before declaration", name.line, name.text)
				}
			default:
				p.doc.glyphs.Add(t.text)
			}
		}
	}
}

func (p *parser) skipStatement() error {
	for {
		t, err := p.next()
		if err != nil {
			return err
		}
		if t.kind == tokPunct && t.text == ";" {
			return nil
		}
	}
}
