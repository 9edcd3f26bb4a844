package sac

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"flexcss/lexical"
)

// Parser drives DocumentHandler with the structure of a style sheet. It is
// not safe for concurrent use, create one per document.
type Parser struct {
	log  *zap.Logger
	doc  DocumentHandler
	errs ErrorHandler

	toks []token
	pos  int
	cur  token

	defaultNS  string
	namespaces map[string]string
}

// NewParser creates parser with handlers ignoring everything.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		log:  log.Named("sac"),
		doc:  NopHandler{},
		errs: nopErrors{},
	}
}

func (p *Parser) SetDocumentHandler(h DocumentHandler) { p.doc = h }

func (p *Parser) SetErrorHandler(h ErrorHandler) { p.errs = h }

// Line returns line of the token parser is positioned on.
func (p *Parser) Line() int { return p.cur.line }

// ParseStyleSheet reads complete style sheet from r. Syntax problems go to
// ErrorHandler, returned error is only set when input could not be read.
func (p *Parser) ParseStyleSheet(r io.Reader) error {
	toks, err := scan(r)
	if err != nil {
		p.errs.FatalError(&ParseError{Line: p.cur.line, Message: err.Error()})
		return fmt.Errorf("unable to read style sheet: %w", err)
	}
	p.toks, p.pos = toks, 0
	p.defaultNS, p.namespaces = "", make(map[string]string)

	p.log.Debug("Tokenized style sheet", zap.Int("tokens", len(toks)))

	p.doc.StartDocument()
	defer p.doc.EndDocument()

	p.next()
	if p.cur.is(css.AtKeywordToken) && strings.EqualFold(p.cur.text, "@charset") {
		if !p.nextIgnoreSpaces().is(css.StringToken) {
			p.reportError(p.errorf("charset.string"))
		} else if !p.nextIgnoreSpaces().is(css.SemicolonToken) {
			p.reportError(p.errorf("semicolon"))
		} else {
			p.next()
		}
	}

	p.skipSpacesAndCDOCDC()
	for p.atKeyword("@import") {
		p.nextIgnoreSpaces()
		p.parseImportRule()
		p.skipSpacesAndCDOCDC()
	}

	for !p.cur.is(css.ErrorToken) {
		switch {
		case p.atKeyword("@namespace"):
			p.nextIgnoreSpaces()
			p.parseNamespace()
		case p.atKeyword("@page"):
			p.nextIgnoreSpaces()
			p.parsePageRule()
		case p.atKeyword("@media"):
			p.nextIgnoreSpaces()
			p.parseMediaRule()
		case p.atKeyword("@font-face"):
			p.nextIgnoreSpaces()
			p.parseFontFaceRule()
		case p.cur.is(css.AtKeywordToken):
			p.parseAtRule()
		default:
			p.parseRuleSet()
		}
		p.skipSpacesAndCDOCDC()
	}
	return nil
}

// navigation

func (p *Parser) advance() {
	if p.pos < len(p.toks) {
		p.cur = p.toks[p.pos]
		p.pos++
		return
	}
	p.cur = token{tt: css.ErrorToken, line: p.cur.line}
}

// next moves to the next token reporting and skipping comments.
func (p *Parser) next() token {
	for {
		p.advance()
		if !p.cur.is(css.CommentToken) {
			return p.cur
		}
		p.doc.Comment(commentText(p.cur.text))
	}
}

// nextIgnoreSpaces moves to the next token which is not white space.
func (p *Parser) nextIgnoreSpaces() token {
	for {
		if !p.next().is(css.WhitespaceToken) {
			return p.cur
		}
	}
}

func (p *Parser) skipSpaces() {
	for p.cur.is(css.WhitespaceToken) {
		p.next()
	}
}

func (p *Parser) skipSpacesAndCDOCDC() {
	for {
		switch p.cur.tt {
		case css.WhitespaceToken, css.CDOToken, css.CDCToken, css.CommentToken:
			p.next()
		default:
			return
		}
	}
}

func (p *Parser) atKeyword(name string) bool {
	return p.cur.is(css.AtKeywordToken) && strings.EqualFold(p.cur.text, name)
}

// errors

type nopErrors struct{}

func (nopErrors) Warning(*ParseError) {}
func (nopErrors) Error(*ParseError) {}
func (nopErrors) FatalError(*ParseError) {}

func (p *Parser) errorf(key string) *ParseError {
	return &ParseError{Line: p.cur.line, Message: grammarMessage(key)}
}

func (p *Parser) unexpected() *ParseError {
	return &ParseError{Line: p.cur.line, Message: unexpected(p.cur)}
}

// reportError reports e and skips to the end of the current statement: past
// ';' or past the block opened by the statement. Brace closing enclosing
// block is left in place.
func (p *Parser) reportError(e *ParseError) {
	p.errs.Error(e)
	start, depth := p.pos, 0
	for {
		switch p.cur.tt {
		case css.ErrorToken:
			return
		case css.SemicolonToken:
			if depth == 0 {
				p.nextIgnoreSpaces()
				return
			}
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				if p.pos == start {
					p.nextIgnoreSpaces()
				}
				return
			}
			if depth--; depth == 0 {
				p.nextIgnoreSpaces()
				return
			}
		}
		p.nextIgnoreSpaces()
	}
}

// reportDeclarationsError reports e and skips the rest of declaration block
// including its closing brace.
func (p *Parser) reportDeclarationsError(e *ParseError) {
	p.errs.Error(e)
	depth := 1
	for {
		switch p.cur.tt {
		case css.ErrorToken:
			return
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			if depth--; depth == 0 {
				p.nextIgnoreSpaces()
				return
			}
		}
		p.nextIgnoreSpaces()
	}
}

// skipDeclaration reports e and skips a single broken declaration stopping
// before the brace closing the block.
func (p *Parser) skipDeclaration(e *ParseError) {
	p.errs.Error(e)
	depth := 0
	for {
		switch p.cur.tt {
		case css.ErrorToken:
			return
		case css.SemicolonToken:
			if depth == 0 {
				p.nextIgnoreSpaces()
				return
			}
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				return
			}
			depth--
		}
		p.nextIgnoreSpaces()
	}
}

// statements

// parseAtRule collects unknown at-rule text up to ';' or the end of its
// block.
func (p *Parser) parseAtRule() {
	var sb strings.Builder
	depth := 0
loop:
	for {
		switch p.cur.tt {
		case css.ErrorToken:
			break loop
		case css.CommentToken:
			p.next()
			continue
		case css.SemicolonToken:
			if depth == 0 {
				sb.WriteString(p.cur.text)
				break loop
			}
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth <= 0 {
				sb.WriteString(p.cur.text)
				break loop
			}
		}
		sb.WriteString(p.cur.text)
		p.advance()
	}
	p.doc.IgnorableAtRule(sb.String())
	p.nextIgnoreSpaces()
}

func (p *Parser) parseImportRule() {
	var uri string
	switch p.cur.tt {
	case css.StringToken:
		uri = unquote(p.cur.text)
	case css.URLToken:
		uri = urlValue(p.cur.text)
	default:
		p.reportError(p.errorf("string.or.uri"))
		return
	}
	p.nextIgnoreSpaces()

	var ml MediaList
	if p.cur.is(css.IdentToken) {
		var err *ParseError
		if ml, err = p.parseMediaList(); err != nil {
			p.reportError(err)
			return
		}
	}
	p.doc.ImportStyle(uri, ml, p.defaultNS)

	if !p.cur.is(css.SemicolonToken) {
		p.reportError(p.errorf("semicolon"))
		return
	}
	p.next()
}

func (p *Parser) parseNamespace() {
	var prefix, uri string
	switch p.cur.tt {
	case css.IdentToken:
		prefix = unescape(p.cur.text)
		p.nextIgnoreSpaces()
	case css.StringToken, css.URLToken:
	default:
		p.reportError(p.errorf("prefix.or.namespace"))
		return
	}

	switch p.cur.tt {
	case css.StringToken:
		uri = unquote(p.cur.text)
		p.nextIgnoreSpaces()
	case css.URLToken:
		uri = urlValue(p.cur.text)
		p.nextIgnoreSpaces()
	case css.SemicolonToken:
	default:
		p.reportError(p.errorf("namespace"))
		return
	}

	if uri != "" {
		if prefix == "" {
			p.defaultNS = uri
		} else {
			p.namespaces[prefix] = uri
		}
		p.doc.NamespaceDeclaration(prefix, uri)
	}

	if !p.cur.is(css.SemicolonToken) {
		p.reportError(p.errorf("semicolon"))
		return
	}
	p.next()
}

func (p *Parser) parseMediaList() (MediaList, *ParseError) {
	var ml MediaList
	for {
		q, err := p.parseMediaQuery()
		if err != nil {
			return nil, err
		}
		ml = append(ml, q)
		if !p.cur.is(css.CommaToken) {
			return ml, nil
		}
		p.nextIgnoreSpaces()
	}
}

func (p *Parser) parseMediaQuery() (MediaQuery, *ParseError) {
	var q MediaQuery
	expectAnd := true
	switch p.cur.tt {
	case css.IdentToken:
		switch strings.ToLower(p.cur.text) {
		case "not":
			q.Not = true
			p.nextIgnoreSpaces()
		case "only":
			q.Only = true
			p.nextIgnoreSpaces()
		}
		if !p.cur.is(css.IdentToken) {
			return q, p.errorf("identifier")
		}
		q.Type = unescape(p.cur.text)
		p.nextIgnoreSpaces()
	case css.LeftParenthesisToken:
		expectAnd = false
	default:
		return q, p.errorf("identifier")
	}

	for !expectAnd || p.cur.is(css.IdentToken) && strings.EqualFold(p.cur.text, "and") {
		if expectAnd {
			p.nextIgnoreSpaces()
		}
		expectAnd = true
		if !p.cur.is(css.LeftParenthesisToken) {
			return q, p.errorf("left.brace")
		}
		if !p.nextIgnoreSpaces().is(css.IdentToken) {
			return q, p.errorf("identifier")
		}
		e := MediaExpression{Feature: unescape(p.cur.text)}
		p.nextIgnoreSpaces()
		switch p.cur.tt {
		case css.RightParenthesisToken:
		case css.ColonToken:
			p.nextIgnoreSpaces()
			v, err := p.parseExpression(true)
			if err != nil {
				return q, err
			}
			e.Value = v
		default:
			return q, p.errorf("colon")
		}
		if !p.cur.is(css.RightParenthesisToken) {
			return q, p.errorf("right.brace")
		}
		p.nextIgnoreSpaces()
		q.Expressions = append(q.Expressions, e)
	}
	return q, nil
}

func (p *Parser) parseMediaRule() {
	ml, err := p.parseMediaList()
	if err != nil {
		p.reportError(err)
		return
	}

	p.doc.StartMedia(ml)
	defer p.doc.EndMedia(ml)

	if !p.cur.is(css.LeftBraceToken) {
		p.reportError(p.errorf("left.curly.brace"))
		return
	}
	p.nextIgnoreSpaces()
	for {
		switch {
		case p.cur.is(css.ErrorToken):
			p.reportDeclarationsError(p.errorf("eof"))
			return
		case p.cur.is(css.RightBraceToken):
			p.nextIgnoreSpaces()
			return
		default:
			p.parseRuleSet()
			p.skipSpacesAndCDOCDC()
		}
	}
}

func (p *Parser) parseFontFaceRule() {
	p.doc.StartFontFace()
	defer p.doc.EndFontFace()

	if !p.cur.is(css.LeftBraceToken) {
		p.reportError(p.errorf("left.curly.brace"))
		return
	}
	p.nextIgnoreSpaces()
	if err := p.parseStyleDeclaration(); err != nil {
		p.reportDeclarationsError(err)
	}
}

func (p *Parser) parsePageRule() {
	var page, pseudo string
	if p.cur.is(css.IdentToken) {
		page = unescape(p.cur.text)
		p.nextIgnoreSpaces()
	}
	if p.cur.is(css.ColonToken) {
		if !p.nextIgnoreSpaces().is(css.IdentToken) {
			p.reportError(p.errorf("identifier"))
			return
		}
		pseudo = unescape(p.cur.text)
		p.nextIgnoreSpaces()
	}

	p.doc.StartPage(page, pseudo)
	defer p.doc.EndPage(page, pseudo)

	if !p.cur.is(css.LeftBraceToken) {
		p.reportError(p.errorf("left.curly.brace"))
		return
	}
	p.nextIgnoreSpaces()
	if err := p.parseStyleDeclaration(); err != nil {
		p.reportDeclarationsError(err)
	}
}

func (p *Parser) parseRuleSet() {
	sl, err := p.parseSelectorList()
	if err != nil {
		p.reportError(err)
		return
	}

	p.doc.StartSelector(sl)
	defer p.doc.EndSelector(sl)

	if !p.cur.is(css.LeftBraceToken) {
		p.reportError(p.errorf("left.curly.brace"))
		return
	}
	p.nextIgnoreSpaces()
	if err := p.parseStyleDeclaration(); err != nil {
		p.reportDeclarationsError(err)
	}
}

// parseStyleDeclaration parses declarations up to and including the closing
// brace. Broken values are reported and skipped, broken structure is returned.
func (p *Parser) parseStyleDeclaration() *ParseError {
	for {
		switch p.cur.tt {
		case css.ErrorToken:
			return p.errorf("eof")
		case css.RightBraceToken:
			p.nextIgnoreSpaces()
			return nil
		case css.SemicolonToken:
			p.nextIgnoreSpaces()
			continue
		case css.IdentToken, css.CustomPropertyNameToken:
		default:
			return p.errorf("identifier")
		}

		name := unescape(p.cur.text)
		if !p.nextIgnoreSpaces().is(css.ColonToken) {
			return p.errorf("colon")
		}
		p.nextIgnoreSpaces()

		value, err := p.parseExpression(false)
		if err != nil {
			p.skipDeclaration(err)
			continue
		}
		important := false
		if p.cur.delim("!") {
			if !p.nextIgnoreSpaces().is(css.IdentToken) || !strings.EqualFold(p.cur.text, "important") {
				p.skipDeclaration(p.unexpected())
				continue
			}
			important = true
			p.nextIgnoreSpaces()
		}
		p.doc.Property(name, value, important)
	}
}

// parseExpression parses terms separated by optional operators. Inside
// function parameters expression ends before ')'.
func (p *Parser) parseExpression(param bool) (lexical.Chain, *ParseError) {
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	chain := lexical.Chain{t}
	for {
		op := false
		switch {
		case p.cur.is(css.CommaToken):
			op = true
			chain = append(chain, lexical.NewComma(p.cur.line))
			p.nextIgnoreSpaces()
		case p.cur.delim("="), p.cur.delim("/"):
			op = true
			chain = append(chain, lexical.NewSlash(p.cur.line))
			p.nextIgnoreSpaces()
		}
		if param {
			if p.cur.is(css.RightParenthesisToken) {
				if op {
					return nil, p.unexpected()
				}
				return chain, nil
			}
		} else {
			switch {
			case p.cur.delim("!"), p.cur.is(css.SemicolonToken), p.cur.is(css.RightBraceToken), p.cur.is(css.ErrorToken):
				if op {
					return nil, p.unexpected()
				}
				return chain, nil
			}
		}
		if t, err = p.parseTerm(); err != nil {
			return nil, err
		}
		chain = append(chain, t)
	}
}
