package ingest

import "strings"

// IgnoreFilter decides whether a file should be skipped during
// ingestion. Hidden files are always skipped; other files are skipped
// when the configured ignore list matches either the file's extension
// or its exact name.
type IgnoreFilter struct {
	tokens map[string]struct{}
}

// NewIgnoreFilter builds a filter from ignore tokens. A token is either
// an extension (".txt") or an exact file name ("image.jpg", "README").
func NewIgnoreFilter(tokens []string) *IgnoreFilter {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return &IgnoreFilter{tokens: set}
}

// Hidden reports whether the file name is hidden by platform
// convention (leading dot).
func (f *IgnoreFilter) Hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Matches reports whether the ignore list contains the file's extension
// or its exact name. The extension is the text from the first '.' in
// the name onward; a name with no '.' has extension equal to the whole
// name, so name-only tokens still match.
func (f *IgnoreFilter) Matches(name string) bool {
	if len(f.tokens) == 0 {
		return false
	}

	extension := name
	if i := strings.Index(name, "."); i >= 0 {
		extension = name[i:]
	}

	if _, ok := f.tokens[extension]; ok {
		return true
	}
	_, ok := f.tokens[name]
	return ok
}

// ShouldIgnore reports whether the file should be skipped for any
// reason.
func (f *IgnoreFilter) ShouldIgnore(name string) bool {
	return f.Hidden(name) || f.Matches(name)
}
