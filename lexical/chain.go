package lexical

import "strings"

// Chain is an ordered sequence of tokens forming one value (or the parameters
// of a function or color).
type Chain []Token

// First returns the head token, ok is false for an empty chain.
func (c Chain) First() (Token, bool) {
	if len(c) == 0 {
		return Token{}, false
	}
	return c[0], true
}

// Line returns line of the first token which has one.
func (c Chain) Line() int {
	for _, t := range c {
		if t.Line > 0 {
			return t.Line
		}
	}
	return 0
}

// Cursor returns forward-only iterator positioned before the first token.
func (c Chain) Cursor() *Cursor {
	return &Cursor{chain: c, pos: -1}
}

// CSS renders the chain back to source form, operators are glued to the
// preceding token and adjacent terms are separated by a single space.
func (c Chain) CSS() string {
	var sb strings.Builder
	for i, t := range c {
		if i > 0 && !t.IsOperator() && !c[i-1].IsOperator() {
			sb.WriteByte(' ')
		}
		if i > 0 && !t.IsOperator() && c[i-1].Kind == OperatorComma {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.CSS())
	}
	return sb.String()
}

// Cursor walks a chain one token at a time.
type Cursor struct {
	chain Chain
	pos   int
}

// Next advances the cursor and reports whether a token is available.
func (c *Cursor) Next() bool {
	if c.pos < len(c.chain) {
		c.pos++
	}
	return c.pos < len(c.chain)
}

// Token returns current token.
func (c *Cursor) Token() Token {
	if c.pos < 0 || c.pos >= len(c.chain) {
		return Token{}
	}
	return c.chain[c.pos]
}

// Peek returns the token after current without advancing.
func (c *Cursor) Peek() (Token, bool) {
	if c.pos+1 >= len(c.chain) {
		return Token{}, false
	}
	return c.chain[c.pos+1], true
}

// Rest returns remaining tokens including current one.
func (c *Cursor) Rest() Chain {
	if c.pos < 0 {
		return c.chain
	}
	if c.pos >= len(c.chain) {
		return nil
	}
	return c.chain[c.pos:]
}
