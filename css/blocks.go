package css

import (
	"fmt"
	"slices"
)

// DeclarationBlock is a set of properties for one selector, optionally gated
// by a media list.
type DeclarationBlock struct {
	// Media is nil when block applies unconditionally.
	Media       *MediaList
	Declaration *StyleDeclaration

	effects []string
}

// MarkEffectStyle flags property name as effect style: changes to it go
// through the runtime effect trigger rather than direct assignment.
func (b *DeclarationBlock) MarkEffectStyle(name string) {
	if !slices.Contains(b.effects, name) {
		b.effects = append(b.effects, name)
	}
}

// IsEffectStyle reports whether name was flagged with MarkEffectStyle.
func (b *DeclarationBlock) IsEffectStyle(name string) bool {
	return slices.Contains(b.effects, name)
}

// EffectStyles returns flagged names in the order they were flagged.
func (b *DeclarationBlock) EffectStyles() []string {
	return slices.Clone(b.effects)
}

// BlockSet keeps declaration blocks of a selector. Blocks without media list
// are shared per (selector, media) key, media gated blocks are never shared:
// every @media occurrence gets a block of its own. The set only grows.
type BlockSet struct {
	path   string
	blocks []*DeclarationBlock
	cache  map[string]*DeclarationBlock
}

// NewBlockSet creates empty set, declarations of new blocks are attributed to
// path.
func NewBlockSet(path string) *BlockSet {
	return &BlockSet{path: path, cache: make(map[string]*DeclarationBlock)}
}

// GetOrCreateBlock returns block for selector and media list, see BlockSet
// for the sharing rules.
func (s *BlockSet) GetOrCreateBlock(selector fmt.Stringer, media *MediaList) *DeclarationBlock {
	if media != nil {
		b := &DeclarationBlock{Media: media, Declaration: NewStyleDeclaration(s.path)}
		s.blocks = append(s.blocks, b)
		return b
	}
	key := "(" + selector.String() + ")(" + media.concat() + ")"
	if b, ok := s.cache[key]; ok {
		return b
	}
	b := &DeclarationBlock{Declaration: NewStyleDeclaration(s.path)}
	s.cache[key] = b
	s.blocks = append(s.blocks, b)
	return b
}

// Blocks returns blocks in creation order.
func (s *BlockSet) Blocks() []*DeclarationBlock {
	return slices.Clone(s.blocks)
}

// HasProperties reports whether any block has at least one property.
func (s *BlockSet) HasProperties() bool {
	for _, b := range s.blocks {
		if b.Declaration.Len() > 0 {
			return true
		}
	}
	return false
}

// HasEffectStyles reports whether any block has flagged effect styles.
func (s *BlockSet) HasEffectStyles() bool {
	for _, b := range s.blocks {
		if len(b.effects) > 0 {
			return true
		}
	}
	return false
}
