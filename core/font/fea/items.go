package fea

import (
	"fmt"
	"strings"
)

// Item is a glyph, a class, or a composition of these, as used in rules.
type Item interface {
	render(p *Program) (string, error)
}

type glyphItem string

// Glyph is an item for a single glyph name.
func Glyph(name string) Item {
	return glyphItem(name)
}

func (g glyphItem) render(p *Program) (string, error) {
	if !ValidGlyphName(string(g)) {
		return "", errInvalid("illegal glyph name '%s'", string(g))
	}
	return string(g), nil
}

type unionItem []Item

// Union is an anonymous class of items, written as [a b c].
func Union(items ...Item) Item {
	return unionItem(items)
}

func (u unionItem) render(p *Program) (string, error) {
	s, marks, err := renderAll(p, u...)
	if err != nil {
		return "", err
	}
	if marks > 0 {
		return "", errInvalid("marked item inside of glyph class")
	}
	return "[" + s + "]", nil
}

type seqItem []Item

// Seq is a sequence of items.
func Seq(items ...Item) Item {
	return seqItem(items)
}

// Repeat is a sequence of n copies of item. For n ≤ 0 the sequence is empty.
func Repeat(item Item, n int) Item {
	seq := seqItem{}
	for i := 0; i < n; i++ {
		seq = append(seq, item)
	}
	return seq
}

func (s seqItem) render(p *Program) (string, error) {
	str, _, err := renderAll(p, s...)
	return str, err
}

// ValueRecord is a positioning adjustment in font units.
type ValueRecord struct {
	XPlacement, YPlacement int
	XAdvance, YAdvance     int
}

func (v ValueRecord) String() string {
	return fmt.Sprintf("<%d %d %d %d>", v.XPlacement, v.YPlacement, v.XAdvance, v.YAdvance)
}

type markedItem struct {
	item   Item
	lookup *LookupRef
	value  *ValueRecord
}

// Marked marks an item as part of the input sequence of a contextual rule.
func Marked(item Item) Item {
	return markedItem{item: item}
}

// Via marks an item and applies a lookup to it.
func Via(item Item, lookup LookupRef) Item {
	return markedItem{item: item, lookup: &lookup}
}

// WithValue marks an item and attaches a value record to it.
func WithValue(item Item, v ValueRecord) Item {
	return markedItem{item: item, value: &v}
}

func (m markedItem) render(p *Program) (string, error) {
	if _, ok := m.item.(markedItem); ok {
		return "", errInvalid("item marked twice")
	}
	s, err := m.item.render(p)
	if err != nil {
		return "", err
	}
	s += "'"
	if m.lookup != nil {
		if err := m.lookup.check(p); err != nil {
			return "", err
		}
		s += " lookup " + m.lookup.name
	}
	if m.value != nil {
		s += " " + m.value.String()
	}
	return s, nil
}

func isMarked(item Item) bool {
	_, ok := item.(markedItem)
	return ok
}

// renderAll renders items separated by blanks, skipping empty ones, and
// counts the marked items.
func renderAll(p *Program, items ...Item) (string, int, error) {
	parts := make([]string, 0, len(items))
	marks := 0
	for _, it := range items {
		if it == nil {
			return "", 0, errInvalid("missing item")
		}
		s, err := it.render(p)
		if err != nil {
			return "", 0, err
		}
		switch x := it.(type) {
		case markedItem:
			marks++
		case seqItem:
			for _, inner := range x {
				if isMarked(inner) {
					marks++
				}
			}
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), marks, nil
}
