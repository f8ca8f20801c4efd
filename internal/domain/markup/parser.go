// Package markup parses the indentation based configuration dialect into an
// ordered tree of Values.
//
// The dialect is a small, lenient subset of YAML: "key: value" pairs, "key:"
// lines opening a nested block, "- item" sequence entries and "#" comments.
// Lines that do not fit the structure around them are skipped rather than
// reported.
package markup

import (
	"strings"
)

// Parse converts text into a mapping. It never fails; unusable lines are
// ignored.
func Parse(text string) Value {
	p := newParser()
	for _, line := range strings.Split(text, "\n") {
		p.line(line)
	}
	return p.freeze(rootNode)
}

const rootNode = 0

// slot holds either a scalar or the arena index of a nested node.
type slot struct {
	scalar Value
	child  int
}

func scalarSlot(v Value) slot { return slot{scalar: v, child: -1} }
func childSlot(id int) slot   { return slot{child: id} }

// node is an arena entry. Mappings use keys/values, sequences use elems.
type node struct {
	kind   Kind
	keys   []string
	values []slot
	elems  []slot
}

// scope is one level of the insertion stack: key lines at an indentation
// deeper than indent land in node. opened is the block started by the line
// that pushed this scope, while its shape is still undecided.
type scope struct {
	node   int
	indent int
	opened int
}

type parser struct {
	nodes  []node
	scopes []scope
	// active maps a mapping node to the sequence its "- " lines append to.
	active map[int]int
}

func newParser() *parser {
	p := &parser{active: make(map[int]int)}
	p.nodes = append(p.nodes, node{kind: KindMapping})
	p.scopes = append(p.scopes, scope{node: rootNode, indent: -1, opened: -1})
	return p
}

func (p *parser) line(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}
	indent := leadingSpaces(raw)

	for len(p.scopes) > 1 && p.scopes[len(p.scopes)-1].indent >= indent {
		p.scopes = p.scopes[:len(p.scopes)-1]
	}

	if strings.HasPrefix(trimmed, "- ") {
		p.listItem(strings.TrimSpace(trimmed[2:]), indent)
		return
	}
	if key, value, ok := splitPair(trimmed); ok {
		p.pair(key, value, indent)
	}
}

func (p *parser) listItem(content string, indent int) {
	top := &p.scopes[len(p.scopes)-1]
	seq, ok := p.active[top.node]
	if !ok {
		return
	}
	// A list entry settles an undecided block as a sequence.
	top.opened = -1

	key, value, ok := splitPair(content)
	if !ok {
		p.nodes[seq].elems = append(p.nodes[seq].elems, scalarSlot(Coerce(content)))
		return
	}

	record := p.newNode(KindMapping)
	v := Null()
	if value != "" {
		v = Coerce(value)
	}
	p.assign(record, key, scalarSlot(v))
	p.nodes[seq].elems = append(p.nodes[seq].elems, childSlot(record))
	p.scopes = append(p.scopes, scope{node: record, indent: indent, opened: -1})
}

func (p *parser) pair(key, value string, indent int) {
	top := &p.scopes[len(p.scopes)-1]
	if top.opened >= 0 {
		p.promote(top)
	}
	target := top.node

	if value != "" {
		p.assign(target, key, scalarSlot(Coerce(value)))
		return
	}

	seq := p.newNode(KindSequence)
	p.assign(target, key, childSlot(seq))
	p.active[target] = seq
	// The enclosing mapping stays the insertion target for this indent level
	// so sibling keys after the block still reach it.
	p.scopes = append(p.scopes, scope{node: target, indent: indent, opened: seq})
}

// promote turns the still empty block opened by top into a mapping that
// receives the deeper key lines, and makes it the scope for that level.
func (p *parser) promote(top *scope) {
	block := top.opened
	p.nodes[block].kind = KindMapping
	if p.active[top.node] == block {
		delete(p.active, top.node)
	}
	top.node = block
	top.opened = -1
}

// assign stores key in a mapping node. When the target is a sequence the
// pair goes to its last element, provided that element is a record.
func (p *parser) assign(id int, key string, s slot) {
	n := &p.nodes[id]
	if n.kind == KindSequence {
		if len(n.elems) == 0 {
			return
		}
		last := n.elems[len(n.elems)-1]
		if last.child < 0 || p.nodes[last.child].kind != KindMapping {
			return
		}
		p.assign(last.child, key, s)
		return
	}

	for i, k := range n.keys {
		if k == key {
			n.values[i] = s
			return
		}
	}
	n.keys = append(n.keys, key)
	n.values = append(n.values, s)
}

func (p *parser) newNode(kind Kind) int {
	p.nodes = append(p.nodes, node{kind: kind})
	return len(p.nodes) - 1
}

func (p *parser) freeze(id int) Value {
	n := p.nodes[id]
	if n.kind == KindSequence {
		items := make([]Value, len(n.elems))
		for i, s := range n.elems {
			items[i] = p.resolve(s)
		}
		return Value{kind: KindSequence, items: items}
	}

	entries := make([]Entry, len(n.keys))
	for i, k := range n.keys {
		entries[i] = Entry{Key: k, Value: p.resolve(n.values[i])}
	}
	return Value{kind: KindMapping, entries: entries}
}

func (p *parser) resolve(s slot) Value {
	if s.child < 0 {
		return s.scalar
	}
	return p.freeze(s.child)
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// splitPair splits at the first ':'. The value is empty when nothing but
// whitespace follows the separator.
func splitPair(s string) (key, value string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}
