package mxml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Namespaces of MXML language elements.
const (
	NamespaceMXML2009 = "http://ns.adobe.com/mxml/2009"
	NamespaceMXML2006 = "http://www.adobe.com/2006/mxml"
)

// Block is a style sheet found in a host document.
type Block struct {
	// Path of the host document.
	Path string
	// Line of the host document the style text starts at.
	Line int
	// Text of inline style sheet, empty when Source is set.
	Text string
	// Source is resolved path of external style sheet.
	Source string
}

// Inline reports whether style sheet text is embedded in host document.
func (b Block) Inline() bool {
	return b.Source == ""
}

var (
	styleStartTag = regexp.MustCompile(`<(?:[A-Za-z_][\w.-]*:)?Style[\s/>]`)
	hiddenMarkup  = regexp.MustCompile(`(?s)<!--.*?-->|<!\[CDATA\[.*?\]\]>`)
)

// ExtractFile reads MXML document and returns its style blocks.
func ExtractFile(path string, log *zap.Logger) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open document: %w", err)
	}
	defer f.Close()
	return Extract(path, f, log)
}

// Extract returns <fx:Style> and <mx:Style> blocks of MXML document in
// document order. External sources are resolved relative to the document
// directory.
func Extract(path string, r io.Reader, log *zap.Logger) ([]Block, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("mxml")

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}

	var styles []*etree.Element
	walk(root, func(el *etree.Element) {
		if el.Tag == "Style" {
			styles = append(styles, el)
		}
	})
	lines := startTagLines(data)
	if len(lines) != len(styles) {
		log.Warn("Unable to locate all style elements, line numbers may be off",
			zap.String("path", path), zap.Int("elements", len(styles)), zap.Int("tags", len(lines)))
	}

	var blocks []Block
	for i, el := range styles {
		switch ns := el.NamespaceURI(); ns {
		case NamespaceMXML2009, NamespaceMXML2006:
		default:
			log.Debug("Skipping non MXML Style element", zap.String("namespace", ns))
			continue
		}
		b := Block{Path: path}
		if i < len(lines) {
			b.Line = lines[i]
		}
		if src := el.SelectAttrValue("source", ""); src != "" {
			if !filepath.IsAbs(src) {
				src = filepath.Join(filepath.Dir(path), filepath.FromSlash(src))
			}
			b.Source = src
			if strings.TrimSpace(el.Text()) != "" {
				log.Warn("Style element has both source and text, text ignored", zap.String("path", path), zap.Int("line", b.Line))
			}
		} else {
			b.Text = el.Text()
		}
		log.Debug("Found style block", zap.String("path", path), zap.Int("line", b.Line), zap.Bool("inline", b.Inline()))
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, child := range el.ChildElements() {
		walk(child, fn)
	}
}

// startTagLines returns, for every Style start tag in document order, line of
// the closing '>' of the tag where element text starts. Comments and CDATA
// sections are masked first, newlines are kept so offsets and lines stay
// intact.
func startTagLines(data []byte) []int {
	masked := hiddenMarkup.ReplaceAllFunc(data, func(m []byte) []byte {
		out := bytes.Repeat([]byte{' '}, len(m))
		for i, c := range m {
			if c == '\n' {
				out[i] = '\n'
			}
		}
		return out
	})
	var lines []int
	for _, loc := range styleStartTag.FindAllIndex(masked, -1) {
		end := bytes.IndexByte(masked[loc[1]-1:], '>')
		if end < 0 {
			break
		}
		offset := loc[1] - 1 + end
		lines = append(lines, 1+bytes.Count(masked[:offset], []byte{'\n'}))
	}
	return lines
}
