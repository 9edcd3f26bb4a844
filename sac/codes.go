package sac

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Code is the lexical unit number reported in "Unexpected token" messages.
// Numbering is stable and shared with the error message translator.
type Code int

const (
	CodeEOF Code = iota
	CodeLeftCurlyBrace
	CodeRightCurlyBrace
	CodeEqual
	CodePlus
	CodeMinus
	CodeComma
	CodeDot
	CodeSemicolon
	CodePrecede
	CodeDivide
	CodeLeftBracket
	CodeRightBracket
	CodeAny
	CodeLeftBrace
	CodeRightBrace
	CodeColon
	CodeSpace
	CodeComment
	CodeString
	CodeIdentifier
	CodeCDO
	CodeCDC
	CodeImportant
	CodeInteger
	CodeDashMatch
	CodeIncludes
	CodeHash
	CodeImportSymbol
	CodeAtKeyword
	CodeCharsetSymbol
	CodeFontFaceSymbol
	CodeMediaSymbol
	CodePageSymbol
	CodeDimension
	CodeEx
	CodeEm
	CodeCm
	CodeMm
	CodeIn
	CodeMs
	CodeHz
	CodePercentage
	CodeS
	CodePc
	CodePt
	CodePx
	CodeDeg
	CodeRad
	CodeGrad
	CodeKHz
	CodeURI
	CodeFunction
	CodeUnicodeRange
	CodeReal
	CodeNamespaceSymbol
	CodeDPI
	CodeDPCM
	// codeCharacter marks input the scanner cannot classify.
	codeCharacter Code = -1
)

// UnexpectedTokenFormat is the message pattern of unexpected token errors.
const UnexpectedTokenFormat = "Unexpected token: %d (see LexicalUnits)."

// Scanner level messages.
const (
	MsgCharacter            = "character"
	MsgIdentifierCharacter  = "identifier.character"
	MsgInvalidIdentStartChr = "Invalid identifier start character: _."
)

var dimensionCodes = map[string]Code{
	"ex":   CodeEx,
	"em":   CodeEm,
	"cm":   CodeCm,
	"mm":   CodeMm,
	"in":   CodeIn,
	"ms":   CodeMs,
	"hz":   CodeHz,
	"s":    CodeS,
	"pc":   CodePc,
	"pt":   CodePt,
	"px":   CodePx,
	"deg":  CodeDeg,
	"rad":  CodeRad,
	"grad": CodeGrad,
	"khz":  CodeKHz,
	"dpi":  CodeDPI,
	"dpcm": CodeDPCM,
}

var atKeywordCodes = map[string]Code{
	"@import":    CodeImportSymbol,
	"@charset":   CodeCharsetSymbol,
	"@font-face": CodeFontFaceSymbol,
	"@media":     CodeMediaSymbol,
	"@page":      CodePageSymbol,
	"@namespace": CodeNamespaceSymbol,
}

// codeOf classifies scanned token.
func codeOf(t token) Code {
	switch t.tt {
	case css.ErrorToken:
		return CodeEOF
	case css.IdentToken:
		return CodeIdentifier
	case css.FunctionToken:
		return CodeFunction
	case css.AtKeywordToken:
		if c, ok := atKeywordCodes[strings.ToLower(t.text)]; ok {
			return c
		}
		return CodeAtKeyword
	case css.HashToken:
		return CodeHash
	case css.StringToken, css.BadStringToken:
		return CodeString
	case css.URLToken, css.BadURLToken:
		return CodeURI
	case css.NumberToken:
		if isIntegerText(t.text) {
			return CodeInteger
		}
		return CodeReal
	case css.PercentageToken:
		return CodePercentage
	case css.DimensionToken:
		_, unit := splitNumber(t.text)
		if c, ok := dimensionCodes[strings.ToLower(unit)]; ok {
			return c
		}
		return CodeDimension
	case css.UnicodeRangeToken:
		return CodeUnicodeRange
	case css.IncludeMatchToken:
		return CodeIncludes
	case css.DashMatchToken:
		return CodeDashMatch
	case css.WhitespaceToken:
		return CodeSpace
	case css.CommentToken:
		return CodeComment
	case css.CDOToken:
		return CodeCDO
	case css.CDCToken:
		return CodeCDC
	case css.ColonToken:
		return CodeColon
	case css.SemicolonToken:
		return CodeSemicolon
	case css.CommaToken:
		return CodeComma
	case css.LeftBracketToken:
		return CodeLeftBracket
	case css.RightBracketToken:
		return CodeRightBracket
	case css.LeftParenthesisToken:
		return CodeLeftBrace
	case css.RightParenthesisToken:
		return CodeRightBrace
	case css.LeftBraceToken:
		return CodeLeftCurlyBrace
	case css.RightBraceToken:
		return CodeRightCurlyBrace
	case css.DelimToken:
		switch t.text {
		case "=":
			return CodeEqual
		case "+":
			return CodePlus
		case "-":
			return CodeMinus
		case ".":
			return CodeDot
		case ">":
			return CodePrecede
		case "/":
			return CodeDivide
		case "*":
			return CodeAny
		case "!":
			return CodeImportant
		}
	}
	return codeCharacter
}

// unexpected builds message for the token which grammar cannot accept here.
func unexpected(t token) string {
	c := codeOf(t)
	if c == codeCharacter {
		return MsgCharacter
	}
	return fmt.Sprintf(UnexpectedTokenFormat, c)
}

// messages for grammar level problems which are not about a particular token.
var grammarMessages = map[string]string{
	"charset.string":           "String expected after @charset.",
	"semicolon":                "';' expected.",
	"string.or.uri":            "String or URI expected.",
	"prefix.or.namespace":      "Namespace prefix or URI expected.",
	"namespace":                "Namespace URI expected.",
	"unresolved.namespace":     "Unresolved namespace prefix.",
	"colon":                    "':' expected.",
	"identifier":               "Identifier expected.",
	"left.brace":               "'(' expected.",
	"right.brace":              "')' expected.",
	"left.curly.brace":         "'{' expected.",
	"right.bracket":            "']' expected.",
	"identifier.or.string":     "Identifier or string expected.",
	"pseudo.function":          "Unsupported pseudo function.",
	"pseudo.element.position":  "Pseudo element must be the last part of a selector.",
	"duplicate.pseudo.element": "Duplicate pseudo element.",
	"rgb.color":                "Invalid RGB color.",
	"number.format":            "Invalid number format.",
	"eof":                      "Unexpected end of file.",
	"eof.expected":             "End of file expected.",
}

func grammarMessage(key string) string {
	if m, ok := grammarMessages[key]; ok {
		return m
	}
	return key
}
