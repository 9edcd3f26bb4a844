package codegen

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"

	"flexcss/css"
	"flexcss/lexical"
)

const (
	cssEmbedPrefix  = "_embed_css_"
	fontEmbedPrefix = "_embed__font_"

	// Source position parameters attached to every embed.
	paramFile    = "_file"
	paramLine    = "_line"
	paramPathSep = "_pathsep"
)

// Param is a single embed parameter.
type Param struct {
	Key   string `yaml:"key" ion:"key"`
	Value string `yaml:"value" ion:"value"`
}

// Embed is an asset hoisted into class variable annotated with [Embed].
type Embed struct {
	Name   string
	Params []Param
	Font   bool
	Path   string
	Line   int
}

// Param returns value of embed parameter.
func (e *Embed) Param(key string) (string, bool) {
	for _, p := range e.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Attributes renders parameters as [Embed] metadata arguments.
func (e *Embed) Attributes() string {
	return attributes(e.Params)
}

func attributes(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Key+"="+strconv.Quote(p.Value))
	}
	return strings.Join(parts, ", ")
}

// sameAsset compares parameters ignoring source position.
func (e *Embed) sameAsset(o *Embed) bool {
	strip := func(params []Param) []Param {
		return slices.DeleteFunc(slices.Clone(params), func(p Param) bool {
			return p.Key == paramFile || p.Key == paramLine || p.Key == paramPathSep
		})
	}
	return e.Font == o.Font && slices.Equal(strip(e.Params), strip(o.Params))
}

// parseEmbed reads parameters of Embed(...) function token. Single unnamed
// parameter is the source, named ones are written as name = value (or name
// "=" value which lexer turns into slash operator).
func parseEmbed(t lexical.Token) ([]Param, error) {
	var (
		params []Param
		group  lexical.Chain
	)
	flush := func() error {
		defer func() { group = group[:0] }()
		switch {
		case len(group) == 1:
			params = append(params, Param{Key: "source", Value: embedValue(group[0])})
		case len(group) == 3 && group[0].Kind == lexical.Ident && group[1].Kind == lexical.OperatorSlash:
			params = append(params, Param{Key: group[0].Text, Value: embedValue(group[2])})
		default:
			return &InvalidEmbedError{Value: t.CSS()}
		}
		return nil
	}
	for _, p := range t.Params {
		if p.Kind == lexical.OperatorComma {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		group = append(group, p)
	}
	if len(group) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	if len(params) == 0 {
		return nil, &InvalidEmbedError{Value: t.CSS()}
	}
	return params, nil
}

func embedValue(t lexical.Token) string {
	if s, err := t.StringValue(); err == nil {
		return s
	}
	return t.CSS()
}

// withPosition appends source position parameters. Windows paths are
// normalized with separator flag set.
func withPosition(params []Param, path string, line int) []Param {
	if strings.ContainsRune(path, '\\') {
		params = append(params,
			Param{Key: paramFile, Value: strings.ReplaceAll(path, `\`, "/")},
			Param{Key: paramPathSep, Value: "true"})
	} else {
		params = append(params, Param{Key: paramFile, Value: path})
	}
	return append(params, Param{Key: paramLine, Value: strconv.Itoa(line)})
}

// fontEmbedParams converts resolved font face parameters to embed parameters
// in natural key order.
func fontEmbedParams(p *css.EmbedParams) []Param {
	m := p.Map()
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, naturalCompare)

	params := make([]Param, 0, len(keys))
	for _, k := range keys {
		var v string
		switch val := m[k].(type) {
		case string:
			v = val
		case []map[string]string:
			parts := make([]string, 0, len(val))
			for _, src := range val {
				for kind, s := range src {
					parts = append(parts, fmt.Sprintf("%s(%q)", kind, s))
				}
			}
			v = strings.Join(parts, ", ")
		default:
			v = fmt.Sprint(val)
		}
		params = append(params, Param{Key: k, Value: v})
	}
	return params
}

// identifier makes ActionScript identifier fragment out of arbitrary text.
func identifier(s string) string {
	id := strings.ReplaceAll(slug.Make(s), "-", "_")
	if id == "" {
		return "asset"
	}
	return id
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}

// embedRegistry names embeds uniquely and shares identical assets.
type embedRegistry struct {
	byName map[string]*Embed
}

func newEmbedRegistry() *embedRegistry {
	return &embedRegistry{byName: make(map[string]*Embed)}
}

// add registers embed under base name returning either the registered embed
// or an earlier one for the same asset.
func (r *embedRegistry) add(base string, e *Embed) *Embed {
	name := base
	for i := 2; ; i++ {
		prev, ok := r.byName[name]
		if !ok {
			break
		}
		if prev.sameAsset(e) {
			return prev
		}
		name = base + "_" + strconv.Itoa(i)
	}
	e.Name = name
	r.byName[name] = e
	return e
}

// sorted returns embeds in natural name order.
func (r *embedRegistry) sorted() []*Embed {
	out := slices.Collect(maps.Values(r.byName))
	slices.SortFunc(out, func(a, b *Embed) int { return naturalCompare(a.Name, b.Name) })
	return out
}

// cssEmbedName derives variable name from source and symbol of the asset.
func cssEmbedName(params []Param) string {
	e := Embed{Params: params}
	base, _ := e.Param("source")
	if sym, ok := e.Param("symbol"); ok {
		base += "_" + sym
	}
	return cssEmbedPrefix + identifier(base)
}

// fontEmbedName follows runtime convention for embedded font classes.
func fontEmbedName(family string, bold, italic bool) string {
	weight, style := "medium", "normal"
	if bold {
		weight = "bold"
	}
	if italic {
		style = "italic"
	}
	return fontEmbedPrefix + identifier(family) + "_" + weight + "_" + style
}
