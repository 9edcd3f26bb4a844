package css

import (
	"fmt"
)

// ColorNotSupportedError is returned for identifiers which are not known
// color names.
type ColorNotSupportedError struct {
	Color string
}

func (e *ColorNotSupportedError) Error() string {
	return fmt.Sprintf("color not supported: %s", e.Color)
}

// ValueNotSupportedError is returned when value of the property cannot be
// interpreted as requested.
type ValueNotSupportedError struct {
	Property string
}

func (e *ValueNotSupportedError) Error() string {
	if e.Property == "" {
		return "value not supported"
	}
	return fmt.Sprintf("value not supported for property %q", e.Property)
}

// FunctionNotSupportedError is returned for function values other than
// Embed, ClassReference and PropertyReference.
type FunctionNotSupportedError struct {
	Function string
}

func (e *FunctionNotSupportedError) Error() string {
	return fmt.Sprintf("function not supported: %s", e.Function)
}

// InvalidFormatError is returned when list elements are not separated by
// comma or slash.
type InvalidFormatError struct {
	Property string
}

func (e *InvalidFormatError) Error() string {
	if e.Property == "" {
		return "invalid list format"
	}
	return fmt.Sprintf("invalid list format for property %q", e.Property)
}

// UnparsableCSSError reports a token which could not be rendered to a string.
// It is a warning, processing continues with the next token.
type UnparsableCSSError struct {
	Path string
	Line int
}

func (e *UnparsableCSSError) Error() string {
	return fmt.Sprintf("%s:%d: unparsable CSS", e.Path, e.Line)
}

// InvalidCharsetError is returned when declared @charset cannot decode its
// own declaration.
type InvalidCharsetError struct {
	Path    string
	Charset string
}

func (e *InvalidCharsetError) Error() string {
	return fmt.Sprintf("%s: invalid style sheet charset %q", e.Path, e.Charset)
}

// IgnoredDescriptorWarning reports font face descriptor which is accepted
// but has no effect on embedding.
type IgnoredDescriptorWarning struct {
	Descriptor string
}

func (e *IgnoredDescriptorWarning) Error() string {
	return fmt.Sprintf("font face descriptor %q is ignored", e.Descriptor)
}

// DeprecatedWarning reports use of a deprecated property name.
type DeprecatedWarning struct {
	Name        string
	Replacement string
	Since       string
}

func (e *DeprecatedWarning) Error() string {
	return fmt.Sprintf("%q has been deprecated since %s, use %q instead", e.Name, e.Since, e.Replacement)
}
