package css

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"flexcss/sac"
)

// Message keys of the diagnostic catalog.
const (
	MsgInvalidSyntaxToken    = "InvalidCSSSyntaxToken"
	MsgInvalidSyntaxArray    = "InvalidCSSSyntaxArray"
	MsgInvalidSyntax         = "InvalidCSSSyntax"
	MsgInvalidSyntaxUnits    = "InvalidCSSSyntaxUnits"
	MsgInvalidIdentStartChar = "InvalidIdentifierStartChar"
	MsgUnableToParse         = "UnableToParse"
	MsgColorNotSupported     = "ColorNotSupported"
	MsgValueNotSupported     = "ValueNotSupported"
	MsgFunctionNotSupported  = "FunctionNotSupported"
	MsgInvalidFormat         = "InvalidFormat"
	MsgUnparsableCSS         = "UnparsableCSS"
	MsgInvalidCharset        = "StyleSheetInvalidCharset"
	MsgIgnoredDescriptor     = "IgnoredDescriptor"
	MsgDeprecated            = "DeprecatedWarning"
)

var englishMessages = map[string]string{
	MsgInvalidSyntaxToken:    "Invalid CSS syntax, unexpected token '%s'.",
	MsgInvalidSyntaxArray:    "Invalid CSS syntax, unexpected token '%s'. Use comma separated values for arrays.",
	MsgInvalidSyntax:         "Invalid CSS syntax, unexpected %s.",
	MsgInvalidSyntaxUnits:    "Invalid CSS syntax, unexpected %s units.",
	MsgInvalidIdentStartChar: "Invalid identifier start character '_'.",
	MsgUnableToParse:         "Unable to parse CSS, unexpected character.",
	MsgColorNotSupported:     "Color '%s' is not supported.",
	MsgValueNotSupported:     "Value of '%s' is not supported.",
	MsgFunctionNotSupported:  "Function '%s' is not supported.",
	MsgInvalidFormat:         "Invalid list format, values must be separated by comma or slash.",
	MsgUnparsableCSS:         "Unparsable CSS value.",
	MsgInvalidCharset:        "Style sheet '%s' declares invalid charset '%s'.",
	MsgIgnoredDescriptor:     "The '%s' font face descriptor is not supported and will be ignored.",
	MsgDeprecated:            "'%s' has been deprecated since %s. Please use '%s'.",
}

// Unexpected token codes and what to call them in messages.
var (
	tokenTexts = map[sac.Code]string{
		sac.CodeAny:             "*",
		sac.CodeAtKeyword:       "@ident",
		sac.CodeCDC:             "-->",
		sac.CodeCDO:             "<!--",
		sac.CodeEOF:             "EOF",
		sac.CodeLeftCurlyBrace:  "{",
		sac.CodeRightCurlyBrace: "}",
		sac.CodeEqual:           "=",
		sac.CodePlus:            "+",
		sac.CodeMinus:           "-",
		sac.CodeComma:           ",",
		sac.CodeDot:             ".",
		sac.CodeSemicolon:       ";",
		sac.CodePrecede:         ">",
		sac.CodeDivide:          "/",
		sac.CodeRightBracket:    "]",
		sac.CodeLeftBrace:       "(",
		sac.CodeRightBrace:      ")",
		sac.CodeColon:           ":",
		sac.CodeImportant:       "!important",
		sac.CodeDashMatch:       "|=",
		sac.CodeIncludes:        "~=",
		sac.CodeHash:            "#",
		sac.CodeImportSymbol:    "@import",
		sac.CodeCharsetSymbol:   "@charset",
		sac.CodeFontFaceSymbol:  "@font-face",
		sac.CodeMediaSymbol:     "@media",
		sac.CodePageSymbol:      "@page",
	}
	syntaxTexts = map[sac.Code]string{
		sac.CodeSpace:        "space",
		sac.CodeComment:      "comment",
		sac.CodeString:       "string",
		sac.CodeIdentifier:   "identifier",
		sac.CodeInteger:      "integer",
		sac.CodeDimension:    "dimension",
		sac.CodeURI:          "URI",
		sac.CodeFunction:     "identifier",
		sac.CodeUnicodeRange: "unicode range",
		sac.CodeReal:         "real number",
	}
	unitTexts = map[sac.Code]string{
		sac.CodeEx:         "ex",
		sac.CodeEm:         "em",
		sac.CodeCm:         "cm",
		sac.CodeMm:         "mm",
		sac.CodeIn:         "in",
		sac.CodeMs:         "ms",
		sac.CodeHz:         "hz",
		sac.CodePercentage: "percentage",
		sac.CodeS:          "S",
		sac.CodePc:         "pc",
		sac.CodePt:         "pt",
		sac.CodePx:         "px",
		sac.CodeDeg:        "deg",
		sac.CodeRad:        "rad",
		sac.CodeGrad:       "grad",
		sac.CodeKHz:        "khz",
	}
)

// Localizer produces user visible diagnostic text.
type Localizer struct {
	printer *message.Printer
}

// NewLocalizer creates localizer for tag. Only English catalog is shipped,
// other tags fall back to it.
func NewLocalizer(tag language.Tag) *Localizer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range englishMessages {
		// keys and formats are static, SetString cannot fail on them
		_ = b.SetString(language.English, key, msg)
	}
	return &Localizer{printer: message.NewPrinter(tag, message.Catalog(b))}
}

// Sprintf formats catalog message key with arguments.
func (l *Localizer) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Translate turns low level parser message into user friendly text. Unknown
// messages are returned unchanged.
func (l *Localizer) Translate(msg string) string {
	switch msg {
	case sac.MsgInvalidIdentStartChr:
		return l.Sprintf(MsgInvalidIdentStartChar)
	case sac.MsgCharacter, sac.MsgIdentifierCharacter:
		return l.Sprintf(MsgUnableToParse)
	}

	rest, ok := strings.CutPrefix(msg, "Unexpected token:")
	if !ok {
		return msg
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return msg
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return msg
	}
	code := sac.Code(n)
	if code == sac.CodeLeftBracket {
		return l.Sprintf(MsgInvalidSyntaxArray, "[")
	}
	if s, ok := tokenTexts[code]; ok {
		return l.Sprintf(MsgInvalidSyntaxToken, s)
	}
	if s, ok := syntaxTexts[code]; ok {
		return l.Sprintf(MsgInvalidSyntax, s)
	}
	if s, ok := unitTexts[code]; ok {
		return l.Sprintf(MsgInvalidSyntaxUnits, s)
	}
	return msg
}

// Describe returns localized text for errors and warnings of this package,
// anything else is described by its Error method.
func (l *Localizer) Describe(err error) string {
	var (
		colorErr   *ColorNotSupportedError
		valueErr   *ValueNotSupportedError
		funcErr    *FunctionNotSupportedError
		formatErr  *InvalidFormatError
		unparsable *UnparsableCSSError
		charsetErr *InvalidCharsetError
		ignored    *IgnoredDescriptorWarning
		deprecated *DeprecatedWarning
		diagnostic Diagnostic
	)
	switch {
	case errors.As(err, &colorErr):
		return l.Sprintf(MsgColorNotSupported, colorErr.Color)
	case errors.As(err, &valueErr):
		return l.Sprintf(MsgValueNotSupported, valueErr.Property)
	case errors.As(err, &funcErr):
		return l.Sprintf(MsgFunctionNotSupported, funcErr.Function)
	case errors.As(err, &formatErr):
		return l.Sprintf(MsgInvalidFormat)
	case errors.As(err, &unparsable):
		return l.Sprintf(MsgUnparsableCSS)
	case errors.As(err, &charsetErr):
		return l.Sprintf(MsgInvalidCharset, charsetErr.Path, charsetErr.Charset)
	case errors.As(err, &ignored):
		return l.Sprintf(MsgIgnoredDescriptor, ignored.Descriptor)
	case errors.As(err, &deprecated):
		return l.Sprintf(MsgDeprecated, deprecated.Name, deprecated.Since, deprecated.Replacement)
	case errors.As(err, &diagnostic):
		return diagnostic.Message
	}
	return err.Error()
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a localized problem report tied to a source position. Line
// is 0 when position is unknown.
type Diagnostic struct {
	Severity Severity
	Path     string
	Line     int
	Message  string
}

func (d Diagnostic) Error() string {
	if d.Line <= 0 {
		return fmt.Sprintf("%s: %s: %s", d.Path, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", d.Path, d.Line, d.Severity, d.Message)
}
