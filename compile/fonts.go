package compile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"

	"flexcss/css"
)

// FontSourceError reports embedded font source which is missing or does not
// look like a font.
type FontSourceError struct {
	Family string
	Path   string
	Line   int
	Source string
	Err    error
}

func (e *FontSourceError) Error() string {
	return fmt.Sprintf("%s:%d: font source '%s' of '%s': %v", e.Path, e.Line, e.Source, e.Family, e.Err)
}

func (e *FontSourceError) Unwrap() error {
	return e.Err
}

var fontTypes = []string{"ttf", "otf", "woff", "woff2"}

// fontKindMatches checks content against types acceptable for mime type of
// font embed.
func fontKindMatches(mimeType string, data []byte) bool {
	if mimeType == css.MimeTypeFlash {
		return filetype.Is(data, "swf")
	}
	for _, t := range fontTypes {
		if filetype.Is(data, t) {
			return true
		}
	}
	return false
}

// VerifyFontSources checks that url() sources of font faces exist relative to
// declaring style sheet and have font content. System fonts are not checked.
func VerifyFontSources(rules []*css.FontFaceRule) []error {
	var errs []error
	for _, r := range rules {
		params := r.EmbedParams()
		if params == nil || params.Source == "" {
			continue
		}
		decl := r.Declaration.Path()
		fail := func(err error) {
			errs = append(errs, &FontSourceError{
				Family: params.FontName, Path: decl, Line: r.Line(), Source: params.Source, Err: err,
			})
		}

		src := filepath.FromSlash(params.Source)
		if !filepath.IsAbs(src) {
			src = filepath.Join(filepath.Dir(decl), src)
		}
		data, err := os.ReadFile(src)
		if err != nil {
			fail(err)
			continue
		}
		if !fontKindMatches(params.MimeType, data) {
			fail(fmt.Errorf("unexpected content for %s", params.MimeType))
		}
	}
	return errs
}
