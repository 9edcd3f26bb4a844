package codegen

import "fmt"

// InvalidReferenceError is reported for ClassReference or PropertyReference
// with argument which is neither a quoted name nor null.
type InvalidReferenceError struct {
	Class bool
}

func (e *InvalidReferenceError) Error() string {
	kind := "Property"
	if e.Class {
		kind = "Class"
	}
	return fmt.Sprintf("Invalid %sReference, expecting quoted name or null.", kind)
}

// PropertyReferenceRequiresDocumentError is reported when PropertyReference
// is used outside of a host document.
type PropertyReferenceRequiresDocumentError struct{}

func (e *PropertyReferenceRequiresDocumentError) Error() string {
	return "PropertyReference can only be used in style sheets embedded in a document."
}

// InvalidEmbedError is reported for Embed with malformed parameters.
type InvalidEmbedError struct {
	Value string
}

func (e *InvalidEmbedError) Error() string {
	return fmt.Sprintf("Invalid Embed parameters in '%s'.", e.Value)
}

// SelectorNotSupportedError is reported for selectors styles cannot be
// attached to.
type SelectorNotSupportedError struct {
	Selector string
}

func (e *SelectorNotSupportedError) Error() string {
	return fmt.Sprintf("Selector '%s' is not supported, it will be ignored.", e.Selector)
}

// ConditionNotSupportedError is reported for selector conditions other than
// class, id and pseudo class.
type ConditionNotSupportedError struct {
	Condition string
}

func (e *ConditionNotSupportedError) Error() string {
	return fmt.Sprintf("Condition '%s' is not supported, selector will be ignored.", e.Condition)
}

// UnqualifiedTypeSelectorError is reported when type selectors have to be
// namespace qualified but one is not.
type UnqualifiedTypeSelectorError struct {
	Type     string
	Selector string
}

func (e *UnqualifiedTypeSelectorError) Error() string {
	return fmt.Sprintf("Type selector '%s' in '%s' is not qualified with a namespace.", e.Type, e.Selector)
}

// UnresolvedQualifiedTypeSelectorError is reported when namespace of the
// type selector has no package mapping.
type UnresolvedQualifiedTypeSelectorError struct {
	Type     string
	Selector string
}

func (e *UnresolvedQualifiedTypeSelectorError) Error() string {
	return fmt.Sprintf("Qualified type selector '%s' in '%s' could not be resolved.", e.Type, e.Selector)
}
