package mxml_test

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"flexcss/css"
	"flexcss/mxml"
)

const document = `<?xml version="1.0" encoding="utf-8"?>
<s:Application xmlns:fx="http://ns.adobe.com/mxml/2009"
    xmlns:s="library://ns.adobe.com/flex/spark">
  <!-- <fx:Style>ignored</fx:Style> -->
  <fx:Style>
    Button { color: red }
  </fx:Style>
  <fx:Style source="styles/main.css"/>
  <s:Style>not mxml</s:Style>
  <fx:Style><![CDATA[
Label { color: blue }
]]></fx:Style>
</s:Application>
`

func TestExtract(t *testing.T) {
	path := filepath.Join("app", "Main.mxml")
	blocks, err := mxml.Extract(path, strings.NewReader(document), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	inline := blocks[0]
	if !inline.Inline() || inline.Line != 5 || inline.Path != path {
		t.Errorf("unexpected first block %+v", inline)
	}
	external := blocks[1]
	if external.Inline() || external.Source != filepath.Join("app", "styles", "main.css") || external.Line != 8 {
		t.Errorf("unexpected second block %+v", external)
	}
	cdata := blocks[2]
	if cdata.Line != 10 || !strings.Contains(cdata.Text, "Label { color: blue }") {
		t.Errorf("unexpected third block %+v", cdata)
	}
}

func TestExtract_HostLines(t *testing.T) {
	blocks, err := mxml.Extract("Main.mxml", strings.NewReader(document), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := css.NewParser(zap.NewNop())
	for _, tt := range []struct {
		block int
		line  int
	}{
		{block: 0, line: 6},
		{block: 2, line: 11},
	} {
		b := blocks[tt.block]
		sheet, err := p.ParseEmbedded(b.Path, b.Line, b.Text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rule := sheet.Rules()[0]
		if rule.Line() != tt.line {
			t.Errorf("block %d: expected rule on line %d, got %d", tt.block, tt.line, rule.Line())
		}
	}
}

func TestExtract_Invalid(t *testing.T) {
	if _, err := mxml.Extract("bad.mxml", strings.NewReader(""), nil); err == nil {
		t.Error("expected error for empty document")
	}
}
