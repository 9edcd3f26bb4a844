package codegen

import (
	"strings"

	"flexcss/sac"
)

// Universal and global subjects. Styles of both go to the global StyleDef.
const (
	Universal = "*"
	Global    = "global"
)

// Condition kinds as known to the runtime.
const (
	ConditionClass  = "class"
	ConditionID     = "id"
	ConditionPseudo = "pseudo"
)

// Condition is a supported simple selector condition.
type Condition struct {
	Kind  string `yaml:"kind" ion:"kind"`
	Value string `yaml:"value" ion:"value"`
}

func (c Condition) String() string {
	switch c.Kind {
	case ConditionClass:
		return "." + c.Value
	case ConditionID:
		return "#" + c.Value
	}
	return ":" + c.Value
}

// Selector is a parsed selector reduced to what runtime understands: a
// subject (type name, possibly package qualified) with conditions and
// optional descendant ancestor.
type Selector struct {
	Subject    string
	Conditions []Condition
	Ancestor   *Selector
}

// String renders selector the way runtime keys style declarations.
func (s *Selector) String() string {
	var sb strings.Builder
	s.write(&sb)
	return sb.String()
}

func (s *Selector) write(sb *strings.Builder) {
	if s.Ancestor != nil {
		s.Ancestor.write(sb)
		sb.WriteByte(' ')
	}
	sb.WriteString(s.Subject)
	for _, c := range s.Conditions {
		sb.WriteString(c.String())
	}
}

// Chain returns selector and its ancestors, the outermost ancestor first.
func (s *Selector) Chain() []*Selector {
	var out []*Selector
	for cur := s; cur != nil; cur = cur.Ancestor {
		out = append(out, cur)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// converter turns parsed selectors into Selector reporting what cannot be
// converted.
type converter struct {
	qualified  bool
	namespaces map[string]string // namespace URI to package
	report     func(line int, err error)
}

// convert returns nil when selector is not supported, problem has been
// reported already.
func (c *converter) convert(sel *sac.Selector) *Selector {
	if sel.Ancestor != nil && sel.Combinator != ' ' {
		c.report(sel.Line, &SelectorNotSupportedError{Selector: sel.String()})
		return nil
	}
	out := &Selector{Subject: c.typeName(sel)}
	for _, cond := range sel.Conditions {
		var kind string
		switch cond.Kind {
		case sac.ConditionClass:
			kind = ConditionClass
		case sac.ConditionID:
			kind = ConditionID
		case sac.ConditionPseudo:
			kind = ConditionPseudo
		default:
			c.report(sel.Line, &ConditionNotSupportedError{Condition: cond.String()})
			return nil
		}
		out.Conditions = append(out.Conditions, Condition{Kind: kind, Value: cond.Value})
	}
	if sel.Ancestor != nil {
		out.Ancestor = c.convert(sel.Ancestor)
		if out.Ancestor == nil {
			return nil
		}
	}
	return out
}

func (c *converter) typeName(sel *sac.Selector) string {
	name := sel.Element
	if name == "" || name == Universal {
		return Universal
	}
	if name == Global || !c.qualified {
		return name
	}
	if sel.NamespaceURI == "" {
		c.report(sel.Line, &UnqualifiedTypeSelectorError{Type: name, Selector: sel.String()})
		return name
	}
	pkg, ok := c.namespaces[sel.NamespaceURI]
	if !ok {
		c.report(sel.Line, &UnresolvedQualifiedTypeSelectorError{Type: name, Selector: sel.String()})
		return name
	}
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
