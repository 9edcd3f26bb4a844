package codegen

import (
	"strings"

	"flexcss/css"
	"flexcss/lexical"
)

// ValueKind tells how property value is emitted.
type ValueKind int

const (
	// ValueLiteral is an expression ready to be emitted as is.
	ValueLiteral ValueKind = iota
	// ValueEmbed refers to hoisted embed variable.
	ValueEmbed
	// ValueClassReference is a class name or null.
	ValueClassReference
	// ValuePropertyReference is a property of the host document.
	ValuePropertyReference
)

func (k ValueKind) String() string {
	switch k {
	case ValueEmbed:
		return "embed"
	case ValueClassReference:
		return "class"
	case ValuePropertyReference:
		return "property"
	}
	return "literal"
}

// Value is coerced property value.
type Value struct {
	Kind  ValueKind
	Text  string
	Embed *Embed
}

const (
	embedFunc             = "Embed("
	classReferenceFunc    = "ClassReference("
	propertyReferenceFunc = "PropertyReference("
)

// valueProcessor coerces descriptors to output values.
type valueProcessor struct {
	document bool
	embeds   *embedRegistry
}

// fontFamily is always emitted as quoted string of its identifiers, problems
// in the value are returned as warnings together with the value.
func (vp *valueProcessor) fontFamily(d *css.Descriptor) (Value, error) {
	s, err := d.IdentString()
	return Value{Kind: ValueLiteral, Text: `"` + s + `"`}, err
}

func (vp *valueProcessor) process(d *css.Descriptor) (Value, error) {
	s, err := d.ValueString()
	if err != nil {
		return Value{}, err
	}
	switch {
	case strings.HasPrefix(s, embedFunc):
		return vp.embed(d)
	case strings.HasPrefix(s, classReferenceFunc):
		return vp.reference(s, classReferenceFunc)
	case strings.HasPrefix(s, propertyReferenceFunc):
		if !vp.document {
			return Value{}, &PropertyReferenceRequiresDocumentError{}
		}
		return vp.reference(s, propertyReferenceFunc)
	}
	return Value{Kind: ValueLiteral, Text: s}, nil
}

func (vp *valueProcessor) embed(d *css.Descriptor) (Value, error) {
	t, ok := d.Value.First()
	if !ok || t.Kind != lexical.Function {
		return Value{}, &InvalidEmbedError{Value: d.Value.CSS()}
	}
	params, err := parseEmbed(t)
	if err != nil {
		return Value{}, err
	}
	e := &Embed{Params: withPosition(params, d.Path, d.Line), Path: d.Path, Line: d.Line}
	e = vp.embeds.add(cssEmbedName(params), e)
	return Value{Kind: ValueEmbed, Text: e.Name, Embed: e}, nil
}

// reference accepts quoted name or null as the only argument.
func (vp *valueProcessor) reference(s, prefix string) (Value, error) {
	kind := ValuePropertyReference
	if prefix == classReferenceFunc {
		kind = ValueClassReference
	}
	arg := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")"))
	switch {
	case arg == "null":
		return Value{Kind: kind, Text: arg}, nil
	case len(arg) > 1 && arg[0] == '"' && strings.IndexByte(arg[1:], '"') == len(arg)-2:
		return Value{Kind: kind, Text: arg[1 : len(arg)-1]}, nil
	}
	return Value{}, &InvalidReferenceError{Class: kind == ValueClassReference}
}
