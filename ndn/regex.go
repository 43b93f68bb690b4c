/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NameRegex matches names against an NDN regular expression, where each <...> is a
// regular expression matched against the URI form of one whole component:
//
//	<>                any single component
//	<ab+>             a component whose URI form matches ab+
//	[<a><b>]          one component that is a or b
//	[^<a><b>]         one component that is neither a nor b
//	(...)  |          grouping and alternation
//	* + ? {n} {n,} {n,m}  repetition of the preceding item
//	^ $               anchors at the first and past the last component
type NameRegex struct {
	expr        string
	root        regexNode
	anchorStart bool
	anchorEnd   bool
}

// ErrInvalidRegex is returned for a malformed NDN regular expression.
var ErrInvalidRegex = errors.New("invalid NDN regex")

// CompileNameRegex parses an NDN regular expression.
func CompileNameRegex(expr string) (*NameRegex, error) {
	p := &regexParser{src: expr}
	r := &NameRegex{expr: expr}
	if p.peek() == '^' {
		r.anchorStart = true
		p.pos++
	}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.peek() == '$' {
		r.anchorEnd = true
		p.pos++
	}
	if p.pos != len(p.src) {
		return nil, p.fail("unexpected character")
	}
	r.root = root
	return r, nil
}

func (r *NameRegex) String() string {
	return r.expr
}

// Match returns whether the regex matches the name.
func (r *NameRegex) Match(name *Name) bool {
	comps := make([]string, name.Size())
	for i := range comps {
		comps[i] = name.At(i).String()
	}

	for start := 0; start <= len(comps); start++ {
		if r.root.match(comps, start, func(end int) bool {
			return !r.anchorEnd || end == len(comps)
		}) {
			return true
		}
		if r.anchorStart {
			break
		}
	}
	return false
}

type regexNode interface {
	// match tries to match comps starting at pos and calls k with every possible end position
	// until k returns true.
	match(comps []string, pos int, k func(int) bool) bool
}

type componentNode struct {
	// nil matches any component
	re *regexp.Regexp
}

func (n *componentNode) matchOne(comp string) bool {
	return n.re == nil || n.re.MatchString(comp)
}

func (n *componentNode) match(comps []string, pos int, k func(int) bool) bool {
	return pos < len(comps) && n.matchOne(comps[pos]) && k(pos+1)
}

type setNode struct {
	negative bool
	members  []*componentNode
}

func (n *setNode) match(comps []string, pos int, k func(int) bool) bool {
	if pos >= len(comps) {
		return false
	}
	found := false
	for _, m := range n.members {
		if m.matchOne(comps[pos]) {
			found = true
			break
		}
	}
	return found != n.negative && k(pos+1)
}

type sequenceNode struct {
	items []regexNode
}

func (n *sequenceNode) match(comps []string, pos int, k func(int) bool) bool {
	return n.matchFrom(0, comps, pos, k)
}

func (n *sequenceNode) matchFrom(i int, comps []string, pos int, k func(int) bool) bool {
	if i == len(n.items) {
		return k(pos)
	}
	return n.items[i].match(comps, pos, func(next int) bool {
		return n.matchFrom(i+1, comps, next, k)
	})
}

type alternationNode struct {
	alternatives []regexNode
}

func (n *alternationNode) match(comps []string, pos int, k func(int) bool) bool {
	for _, alt := range n.alternatives {
		if alt.match(comps, pos, k) {
			return true
		}
	}
	return false
}

type repeatNode struct {
	item regexNode
	min  int
	// max < 0 is unbounded
	max int
}

func (n *repeatNode) match(comps []string, pos int, k func(int) bool) bool {
	return n.matchCount(0, comps, pos, k)
}

// matchCount is greedy: it tries one more repetition before settling.
func (n *repeatNode) matchCount(count int, comps []string, pos int, k func(int) bool) bool {
	if n.max < 0 || count < n.max {
		if n.item.match(comps, pos, func(next int) bool {
			// An empty repetition cannot make progress
			if next == pos {
				return false
			}
			return n.matchCount(count+1, comps, next, k)
		}) {
			return true
		}
	}
	return count >= n.min && k(pos)
}

type regexParser struct {
	src string
	pos int
}

func (p *regexParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *regexParser) fail(reason string) error {
	return fmt.Errorf("%w %q at %d: %s", ErrInvalidRegex, p.src, p.pos, reason)
}

func (p *regexParser) parseAlternation() (regexNode, error) {
	var alternatives []regexNode
	for {
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, seq)
		if p.peek() != '|' {
			break
		}
		p.pos++
	}
	if len(alternatives) == 1 {
		return alternatives[0], nil
	}
	return &alternationNode{alternatives: alternatives}, nil
}

func (p *regexParser) parseSequence() (regexNode, error) {
	seq := new(sequenceNode)
	for {
		var item regexNode
		var err error
		switch p.peek() {
		case '<':
			item, err = p.parseComponent()
		case '[':
			item, err = p.parseSet()
		case '(':
			p.pos++
			item, err = p.parseAlternation()
			if err == nil {
				if p.peek() != ')' {
					return nil, p.fail("missing )")
				}
				p.pos++
			}
		case 0, '|', ')', '$':
			return seq, nil
		default:
			return nil, p.fail("unexpected character")
		}
		if err != nil {
			return nil, err
		}
		if item, err = p.parseRepeat(item); err != nil {
			return nil, err
		}
		seq.items = append(seq.items, item)
	}
}

func (p *regexParser) parseComponent() (*componentNode, error) {
	p.pos++ // <
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		return nil, p.fail("missing >")
	}
	expr := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	if expr == "" {
		return &componentNode{}, nil
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, p.fail(err.Error())
	}
	return &componentNode{re: re}, nil
}

func (p *regexParser) parseSet() (*setNode, error) {
	p.pos++ // [
	set := new(setNode)
	if p.peek() == '^' {
		set.negative = true
		p.pos++
	}
	for p.peek() == '<' {
		member, err := p.parseComponent()
		if err != nil {
			return nil, err
		}
		set.members = append(set.members, member)
	}
	if p.peek() != ']' || len(set.members) == 0 {
		return nil, p.fail("malformed component set")
	}
	p.pos++
	return set, nil
}

func (p *regexParser) parseRepeat(item regexNode) (regexNode, error) {
	switch p.peek() {
	case '*':
		p.pos++
		return &repeatNode{item: item, min: 0, max: -1}, nil
	case '+':
		p.pos++
		return &repeatNode{item: item, min: 1, max: -1}, nil
	case '?':
		p.pos++
		return &repeatNode{item: item, min: 0, max: 1}, nil
	case '{':
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			return nil, p.fail("missing }")
		}
		body := p.src[p.pos+1 : p.pos+end]
		p.pos += end + 1
		minStr, maxStr, hasComma := strings.Cut(body, ",")
		r := &repeatNode{item: item}
		var err error
		if minStr != "" {
			if r.min, err = strconv.Atoi(minStr); err != nil {
				return nil, p.fail("bad repeat count")
			}
		}
		switch {
		case !hasComma:
			r.max = r.min
		case maxStr == "":
			r.max = -1
		default:
			if r.max, err = strconv.Atoi(maxStr); err != nil || r.max < r.min {
				return nil, p.fail("bad repeat count")
			}
		}
		return r, nil
	}
	return item, nil
}
