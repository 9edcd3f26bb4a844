package css

import (
	"slices"
	"strings"

	"flexcss/sac"
)

// MediaList is an ordered list of media query strings. Order matters only
// for the generated text.
type MediaList struct {
	queries []string
}

// NewMediaList creates list from query strings.
func NewMediaList(queries ...string) *MediaList {
	return &MediaList{queries: slices.Clone(queries)}
}

// mediaListFrom renders parsed queries to their canonical text.
func mediaListFrom(ml sac.MediaList) *MediaList {
	return &MediaList{queries: ml.Strings()}
}

// Queries returns query strings.
func (m *MediaList) Queries() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.queries)
}

// Len returns number of queries.
func (m *MediaList) Len() int {
	if m == nil {
		return 0
	}
	return len(m.queries)
}

// Append adds query to the end of the list.
func (m *MediaList) Append(query string) {
	m.queries = append(m.queries, query)
}

// concat joins queries without separator, used to build block keys.
func (m *MediaList) concat() string {
	if m == nil {
		return ""
	}
	return strings.Join(m.queries, "")
}

func (m *MediaList) String() string {
	if m == nil {
		return ""
	}
	return strings.Join(m.queries, ", ")
}
