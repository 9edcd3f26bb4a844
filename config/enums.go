package config

import (
	"errors"
	"fmt"
	"strings"
)

// OutputFormat selects kind of produced output.
type OutputFormat int

const (
	// OutputFormatAs3 is ActionScript style initialisation class.
	OutputFormatAs3 OutputFormat = iota
	// OutputFormatYaml is YAML dump of compiled style definitions.
	OutputFormatYaml
	// OutputFormatIon is Amazon Ion text dump of compiled style definitions.
	OutputFormatIon
)

var ErrInvalidOutputFormat = errors.New("not a valid OutputFormat")

var outputFormatNames = [...]string{
	OutputFormatAs3:  "as3",
	OutputFormatYaml: "yaml",
	OutputFormatIon:  "ion",
}

// OutputFormatNames returns list of possible string values of OutputFormat.
func OutputFormatNames() []string {
	return append([]string(nil), outputFormatNames[:]...)
}

func (o OutputFormat) String() string {
	if o.IsValid() {
		return outputFormatNames[o]
	}
	return fmt.Sprintf("OutputFormat(%d)", int(o))
}

func (o OutputFormat) IsValid() bool {
	return o >= 0 && int(o) < len(outputFormatNames)
}

// ParseOutputFormat attempts to convert case insensitive name to OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	for i, n := range outputFormatNames {
		if strings.EqualFold(n, name) {
			return OutputFormat(i), nil
		}
	}
	return OutputFormat(0), fmt.Errorf("%s is %w", name, ErrInvalidOutputFormat)
}

func (o OutputFormat) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%d is %w", int(o), ErrInvalidOutputFormat)
	}
	return []byte(o.String()), nil
}

func (o *OutputFormat) UnmarshalText(text []byte) error {
	v, err := ParseOutputFormat(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatAs3:
		return ".as"
	case OutputFormatYaml:
		return ".yaml"
	case OutputFormatIon:
		return ".ion"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
