// Package sac is an event based CSS parser. It tokenizes style sheet text,
// turns property values into lexical chains and reports document structure
// to a DocumentHandler as it goes.
package sac

import (
	"fmt"

	"flexcss/lexical"
)

// DocumentHandler receives document structure events in source order.
type DocumentHandler interface {
	StartDocument()
	EndDocument()
	Comment(text string)
	IgnorableAtRule(text string)
	NamespaceDeclaration(prefix, uri string)
	ImportStyle(uri string, media MediaList, defaultNamespaceURI string)
	StartMedia(media MediaList)
	EndMedia(media MediaList)
	StartPage(name, pseudoPage string)
	EndPage(name, pseudoPage string)
	StartFontFace()
	EndFontFace()
	StartSelector(selectors SelectorList)
	EndSelector(selectors SelectorList)
	Property(name string, value lexical.Chain, important bool)
}

// ErrorHandler receives problems found while parsing. Parsing continues after
// Warning and Error, FatalError is reported only when input could not be read.
type ErrorHandler interface {
	Warning(e *ParseError)
	Error(e *ParseError)
	FatalError(e *ParseError)
}

// Locator reports position of the parser in the source.
type Locator interface {
	Line() int
}

// ParseError describes a single problem and the line where it was detected.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// NopHandler implements DocumentHandler ignoring all events. Embed it to
// implement only needed callbacks.
type NopHandler struct{}

func (NopHandler) StartDocument() {}
func (NopHandler) EndDocument() {}
func (NopHandler) Comment(string) {}
func (NopHandler) IgnorableAtRule(string) {}
func (NopHandler) NamespaceDeclaration(string, string) {}
func (NopHandler) ImportStyle(string, MediaList, string) {}
func (NopHandler) StartMedia(MediaList) {}
func (NopHandler) EndMedia(MediaList) {}
func (NopHandler) StartPage(string, string) {}
func (NopHandler) EndPage(string, string) {}
func (NopHandler) StartFontFace() {}
func (NopHandler) EndFontFace() {}
func (NopHandler) StartSelector(SelectorList) {}
func (NopHandler) EndSelector(SelectorList) {}
func (NopHandler) Property(string, lexical.Chain, bool) {}
