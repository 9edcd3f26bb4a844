package css

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// DefaultCharset is used when style sheet does not declare anything.
	DefaultCharset = "UTF-8"

	maxCharsetName = 40
	// BOM, `@charset "` plus `";` and the name
	sniffLength = 2 + 12 + maxCharsetName
)

// Leading byte patterns in priority order. Empty charset means the name has
// to be read from @charset rule.
var leadingBytes = []struct {
	prefix  []byte
	charset string
}{
	{prefix: []byte("\xEF\xBB\xBF@charset \""), charset: ""},
	{prefix: []byte("\xEF\xBB\xBF"), charset: "UTF-8"},
	{prefix: []byte("@charset \""), charset: ""},
	{prefix: []byte("\xFE\xFF"), charset: "UTF-16BE"},
	{prefix: []byte("\xFF\xFE"), charset: "UTF-16LE"},
}

// ReadCharset looks at the leading bytes of style sheet and returns name of
// its character set without consuming anything. Declared is set when the name
// came from @charset rule. Declared charset which cannot be used to read the
// rule itself results in *InvalidCharsetError (with empty Path).
func ReadCharset(br *bufio.Reader) (name string, declared bool, err error) {
	buf, err := br.Peek(sniffLength)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", false, err
	}
	if len(buf) == 0 {
		return DefaultCharset, false, nil
	}

	for _, lb := range leadingBytes {
		if !bytes.HasPrefix(buf, lb.prefix) {
			continue
		}
		if lb.charset != "" {
			return lb.charset, false, nil
		}
		start := len(lb.prefix)
		quote := bytes.IndexByte(buf[start:], '"')
		if quote < 0 || start+quote+1 >= len(buf) || buf[start+quote+1] != ';' {
			return DefaultCharset, false, nil
		}
		name = string(buf[start : start+quote])
		enc := lookupEncoding(name)
		if enc == nil {
			return "", false, &InvalidCharsetError{Charset: name}
		}
		// must be able to read @charset rule using the declared encoding
		decoded, err := enc.NewDecoder().Bytes(buf[:start+quote+2])
		if err != nil || !strings.Contains(string(decoded), name) {
			return "", false, &InvalidCharsetError{Charset: name}
		}
		return name, true, nil
	}
	return DefaultCharset, false, nil
}

// NewDecodingReader returns reader producing UTF-8 text of r encoded with
// charset name. Byte order mark, if present, is consumed and takes priority.
func NewDecodingReader(r io.Reader, name string) (io.Reader, error) {
	enc := lookupEncoding(name)
	if enc == nil {
		return nil, &InvalidCharsetError{Charset: name}
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

func lookupEncoding(name string) encoding.Encoding {
	switch strings.ToUpper(name) {
	case "UTF-8", "UTF8":
		return unicode.UTF8
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc
	}
	// WHATWG labels cover names IANA index does not know about
	enc, _ := charset.Lookup(name)
	return enc
}
