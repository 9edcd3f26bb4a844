package sac

import "strings"

// ConditionKind is the kind of simple selector condition.
type ConditionKind int

const (
	ConditionClass ConditionKind = iota
	ConditionID
	ConditionPseudo
	ConditionAttribute
)

// Condition narrows simple selector: .class, #id, :state or [attr].
type Condition struct {
	Kind  ConditionKind
	Value string
}

func (c Condition) String() string {
	switch c.Kind {
	case ConditionClass:
		return "." + c.Value
	case ConditionID:
		return "#" + c.Value
	case ConditionPseudo:
		return ":" + c.Value
	default:
		return "[" + c.Value + "]"
	}
}

// Selector is a simple selector with optional ancestor chain. Combinator
// tells how Ancestor relates to this selector: ' ' for descendant, '>' for
// child and '+' for direct adjacent.
type Selector struct {
	Namespace    string // prefix as written, empty when not qualified
	NamespaceURI string
	Element      string // empty or "*" matches any element
	Conditions   []Condition
	Ancestor     *Selector
	Combinator   byte
	Line         int
}

// Class returns the first class condition.
func (s *Selector) Class() string { return s.condition(ConditionClass) }

// ID returns the first id condition.
func (s *Selector) ID() string { return s.condition(ConditionID) }

// State returns the first pseudo class condition.
func (s *Selector) State() string { return s.condition(ConditionPseudo) }

func (s *Selector) condition(k ConditionKind) string {
	for _, c := range s.Conditions {
		if c.Kind == k {
			return c.Value
		}
	}
	return ""
}

// IsDescendant returns true if selector has ancestor part.
func (s *Selector) IsDescendant() bool {
	return s.Ancestor != nil
}

// Subject returns the name styles of this selector are attached to: type
// name or "global" for universal selectors.
func (s *Selector) Subject() string {
	if s.Element == "" || s.Element == "*" {
		return "global"
	}
	return s.Element
}

// String renders selector in canonical form.
func (s *Selector) String() string {
	var sb strings.Builder
	s.write(&sb)
	return sb.String()
}

func (s *Selector) write(sb *strings.Builder) {
	if s.Ancestor != nil {
		s.Ancestor.write(sb)
		switch s.Combinator {
		case '>', '+':
			sb.WriteByte(' ')
			sb.WriteByte(s.Combinator)
			sb.WriteByte(' ')
		default:
			sb.WriteByte(' ')
		}
	}
	if s.Namespace != "" {
		sb.WriteString(s.Namespace)
		sb.WriteByte('|')
	}
	if s.Element != "" {
		sb.WriteString(s.Element)
	} else if len(s.Conditions) == 0 {
		sb.WriteByte('*')
	}
	for _, c := range s.Conditions {
		sb.WriteString(c.String())
	}
}

// SelectorList is a comma separated group of selectors sharing one
// declaration block.
type SelectorList []*Selector

func (l SelectorList) String() string {
	parts := make([]string, 0, len(l))
	for _, s := range l {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}
