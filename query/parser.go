package query

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse compiles an intersection-query string into its AST (spec.md
// §4.6 grammar). No third-party parsing library in the example corpus
// targets this bespoke space/bracket/paren DSL, so Parse is a small
// hand-rolled recursive-descent reader over the rune stream.
func Parse(input string) (*IntersectionQuery, error) {
	p := &parser{runes: []rune(input)}
	q, err := p.parseIntersectionQuery()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return q, nil
}

type parser struct {
	runes []rune
	pos   int
}

func (p *parser) eof() bool { return p.pos >= len(p.runes) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.runes[p.pos]
}

func (p *parser) advance() rune {
	r := p.peek()
	p.pos++
	return r
}

func (p *parser) skipSpaces() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' || r == ':' || r == '/'
}

func (p *parser) parseIntersectionQuery() (*IntersectionQuery, error) {
	q := &IntersectionQuery{}
	p.skipSpaces()
	for !p.eof() {
		start := p.pos
		col, err := p.parseSelectionQuery()
		if err != nil {
			return nil, err
		}
		if p.pos == start {
			return nil, fmt.Errorf("unexpected %q at position %d", p.peek(), p.pos)
		}
		q.Columns = append(q.Columns, col)
		p.skipSpaces()
	}
	if len(q.Columns) == 0 {
		return nil, fmt.Errorf("empty query")
	}
	return q, nil
}

func (p *parser) parseSelectionQuery() (SelectionQuery, error) {
	var col SelectionQuery

	if p.peek() == '#' {
		p.advance()
		id, err := p.parseIdent("id")
		if err != nil {
			return col, err
		}
		col.Primary = &Primary{ID: id}
	} else if isIdentRune(p.peek()) {
		typ, err := p.parseIdent("type")
		if err != nil {
			return col, err
		}
		col.Primary = &Primary{Type: typ}
	}

	for p.peek() == '[' {
		attrs, err := p.parseAttrList('[', ']')
		if err != nil {
			return col, err
		}
		col.Multiply = append(col.Multiply, attrs)
	}
	for p.peek() == '(' {
		attrs, err := p.parseAttrList('(', ')')
		if err != nil {
			return col, err
		}
		col.Filters = append(col.Filters, attrs)
	}
	return col, nil
}

func (p *parser) parseAttrList(open, close rune) ([]Attr, error) {
	if p.advance() != open {
		return nil, fmt.Errorf("expected %q", open)
	}
	var attrs []Attr
	for {
		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
		if p.peek() == ',' {
			p.advance()
			continue
		}
		break
	}
	if p.eof() || p.advance() != close {
		return nil, fmt.Errorf("expected %q", close)
	}
	return attrs, nil
}

func (p *parser) parseAttr() (Attr, error) {
	if p.peek() == '#' {
		p.advance()
		id, err := p.parseIdent("id")
		if err != nil {
			return Attr{}, err
		}
		return Attr{ID: id}, nil
	}

	name, err := p.parseIdent("attribute name")
	if err != nil {
		return Attr{}, err
	}
	attr := Attr{Name: name}
	if p.peek() == '=' {
		p.advance()
		value, err := p.parseValue()
		if err != nil {
			return Attr{}, err
		}
		attr.Value = value
		attr.HasValue = true
	}
	return attr, nil
}

func (p *parser) parseIdent(what string) (string, error) {
	start := p.pos
	for !p.eof() && isIdentRune(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("expected %s at position %d", what, p.pos)
	}
	return string(p.runes[start:p.pos]), nil
}

func (p *parser) parseValue() (string, error) {
	if p.peek() == '"' || p.peek() == '\'' {
		quote := p.advance()
		var sb strings.Builder
		for !p.eof() && p.peek() != quote {
			sb.WriteRune(p.advance())
		}
		if p.eof() {
			return "", fmt.Errorf("unterminated quoted value")
		}
		p.advance()
		return sb.String(), nil
	}
	return p.parseIdent("value")
}
