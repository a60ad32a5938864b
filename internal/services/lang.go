package services

import (
	"strings"

	"golang.org/x/text/language"
)

// LangMatcher maps client-supplied language codes onto the supported set.
type LangMatcher struct {
	codes   []string
	matcher language.Matcher
	def     string
}

// NewLangMatcher builds a matcher over supported (e.g. "fa", "en", "ar").
// def is returned for empty or unsupported input; when def is not itself
// supported the first supported code is used instead.
func NewLangMatcher(supported []string, def string) *LangMatcher {
	codes := make([]string, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		s = strings.ToLower(strings.TrimSpace(s))
		tag, err := language.Parse(s)
		if s == "" || err != nil {
			continue
		}
		codes = append(codes, s)
		tags = append(tags, tag)
	}
	if len(codes) == 0 {
		codes, tags = []string{"fa"}, []language.Tag{language.Persian}
	}

	def = strings.ToLower(strings.TrimSpace(def))
	found := false
	for _, c := range codes {
		if c == def {
			found = true
			break
		}
	}
	if !found {
		def = codes[0]
	}
	return &LangMatcher{codes: codes, matcher: language.NewMatcher(tags), def: def}
}

// Default is the fallback language code.
func (m *LangMatcher) Default() string { return m.def }

// Normalize returns the supported code closest to lang ("fa-IR" -> "fa"),
// or the default.
func (m *LangMatcher) Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return m.def
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return m.def
	}
	_, idx, conf := m.matcher.Match(tag)
	if conf == language.No {
		return m.def
	}
	return m.codes[idx]
}
