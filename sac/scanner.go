package sac

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	text string
	line int
}

func (t token) is(tt css.TokenType) bool { return t.tt == tt }

func (t token) delim(s string) bool { return t.tt == css.DelimToken && t.text == s }

// scan tokenizes complete input recording line each token starts on. Result
// always ends with EOF token (css.ErrorToken).
func scan(r io.Reader) ([]token, error) {
	l := css.NewLexer(parse.NewInput(r))
	line := 1
	toks := make([]token, 0, 256)
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			break
		}
		toks = append(toks, token{tt: tt, text: string(data), line: line})
		line += bytes.Count(data, []byte{'\n'})
	}
	return append(toks, token{tt: css.ErrorToken, line: line}), nil
}

// isIntegerText reports if number has no fractional part or exponent.
func isIntegerText(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

// splitNumber splits dimension token into numeric part and unit.
func splitNumber(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return s[:i], s[i:]
}

// unquote removes quotes and resolves escapes of a string token.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		q := s[0]
		s = s[1:]
		if s[len(s)-1] == q {
			s = s[:len(s)-1]
		}
	}
	return unescape(s)
}

// urlValue extracts location from url(...) token.
func urlValue(s string) string {
	if len(s) >= 4 && strings.EqualFold(s[:4], "url(") {
		s = s[4:]
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, ")"))
	return unquote(s)
}

func commentText(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "/*"), "*/")
}

// unescape resolves CSS backslash escapes.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch {
		case s[i] == '\n':
			// line continuation
		case isHex(s[i]):
			j := i
			for j < len(s) && j-i < 6 && isHex(s[j]) {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 16, 32)
			if v == 0 || v > 0x10FFFF {
				v = 0xFFFD
			}
			sb.WriteRune(rune(v))
			if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
				j++
			}
			i = j - 1
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
