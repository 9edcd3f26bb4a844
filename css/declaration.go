package css

import (
	"iter"
	"slices"

	"flexcss/lexical"
)

// properties is insertion ordered name to descriptor map. It is shared by
// shallow copies of a declaration.
type properties struct {
	names  []string
	byName map[string]*Descriptor
}

// StyleDeclaration holds properties of a single rule in declaration order.
// Repeated names overwrite the value in place, the last declaration wins.
type StyleDeclaration struct {
	path   string
	offset int // added to every line, non zero for embedded style sheets
	props  *properties
}

// NewStyleDeclaration creates empty declaration for style sheet at path.
func NewStyleDeclaration(path string) *StyleDeclaration {
	return &StyleDeclaration{
		path:  path,
		props: &properties{byName: make(map[string]*Descriptor)},
	}
}

// Path returns style sheet path declaration belongs to.
func (d *StyleDeclaration) Path() string {
	return d.path
}

// SetProperty stores value under name. Line is used only when value tokens do
// not carry a line of their own.
func (d *StyleDeclaration) SetProperty(name string, value lexical.Chain, line int) *Descriptor {
	desc := NewDescriptor(name, value, d.path, line)
	desc.Line += d.offset
	if _, ok := d.props.byName[name]; !ok {
		d.props.names = append(d.props.names, name)
	}
	d.props.byName[name] = desc
	return desc
}

// Put stores descriptor under name as is, its path and line are kept. Used to
// move already parsed descriptors between declarations.
func (d *StyleDeclaration) Put(name string, desc *Descriptor) {
	if _, ok := d.props.byName[name]; !ok {
		d.props.names = append(d.props.names, name)
	}
	d.props.byName[name] = desc
}

// Property returns descriptor stored under name.
func (d *StyleDeclaration) Property(name string) (*Descriptor, bool) {
	desc, ok := d.props.byName[name]
	return desc, ok
}

// RemoveProperty deletes and returns descriptor stored under name.
func (d *StyleDeclaration) RemoveProperty(name string) (*Descriptor, bool) {
	desc, ok := d.props.byName[name]
	if !ok {
		return nil, false
	}
	delete(d.props.byName, name)
	d.props.names = slices.DeleteFunc(d.props.names, func(n string) bool { return n == name })
	return desc, true
}

// Len returns number of properties.
func (d *StyleDeclaration) Len() int {
	return len(d.props.names)
}

// Names returns property names in declaration order.
func (d *StyleDeclaration) Names() []string {
	return slices.Clone(d.props.names)
}

// All iterates over properties in declaration order.
func (d *StyleDeclaration) All() iter.Seq2[string, *Descriptor] {
	return func(yield func(string, *Descriptor) bool) {
		for _, name := range d.Names() {
			if !yield(name, d.props.byName[name]) {
				return
			}
		}
	}
}

// ShallowCopy returns new declaration sharing properties with d: changes made
// through either one are visible in both.
func (d *StyleDeclaration) ShallowCopy() *StyleDeclaration {
	c := *d
	return &c
}

// Clone returns independent copy of d. Descriptors themselves are shared.
func (d *StyleDeclaration) Clone() *StyleDeclaration {
	c := NewStyleDeclaration(d.path)
	c.offset = d.offset
	for name, desc := range d.All() {
		c.props.names = append(c.props.names, name)
		c.props.byName[name] = desc
	}
	return c
}
