package service

import (
	"strings"
	"unicode"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// subjectAlias maps a canonical subject to the keywords students type for it.
type subjectAlias struct {
	Subject  string
	Keywords []string
}

// marksSubjectAliases covers the full catalogue, core subjects first.
var marksSubjectAliases = []subjectAlias{
	{"data structure", []string{"data structure", "ds", "datal", "structure"}},
	{"computer network", []string{"computer network", "cn", "networks", "computer networks"}},
	{"database management systems", []string{"database", "dbms", "db management", "database management"}},
	{"operating system", []string{"operating system", "os"}},
	{"discrete mathematics", []string{"discrete math", "discrete mathematics", "dm"}},
	{"web technologies", []string{"web technologies", "wt", "web tech"}},
	{"software engineering", []string{"software engineering", "se", "software"}},
	{"theory of computation", []string{"theory of computation", "toc", "toc theory"}},
	{"computer organization", []string{"computer organization", "co", "org"}},
	{"artificial intelligence", []string{"artificial intelligence", "ai"}},
	{"machine learning", []string{"machine learning", "ml"}},
	{"big data analytics", []string{"big data", "bigdata", "big data analytics", "bda"}},
	{"cloud computing", []string{"cloud computing", "cloud", "cc"}},
	{"cyber security", []string{"cyber security", "cybersecurity", "security", "cs"}},
	{"blockchain technology", []string{"blockchain", "blockchain technology", "bt"}},
	{"engineering mathematics", []string{"engineering mathematics", "math", "mathematics"}},
	{"engineering physics", []string{"engineering physics", "physics", "phy"}},
	{"basic electrical engineering", []string{"basic electrical engineering", "basic electrical", "eee", "electrical"}},
	{"engineering chemistry", []string{"engineering chemistry", "chemistry", "chem"}},
	{"engineering graphics", []string{"engineering graphics", "graphics", "mech"}},
}

var attendanceSubjectAliases = []subjectAlias{
	{"data structure", []string{"data structure", "ds", "datal", "structure"}},
	{"computer network", []string{"computer network", "cn", "networks"}},
	{"database", []string{"database", "dbms", "db management"}},
	{"operating system", []string{"operating system", "os"}},
	{"discrete math", []string{"discrete math", "discrete mathematics", "dm"}},
}

// detectSubject returns the first alias with a keyword in msg. Keywords match
// whole words, optionally pluralised, so "cs" does not fire inside "ty-cse".
func detectSubject(msg string, table []subjectAlias) (subjectAlias, bool) {
	words := wordsOf(msg)
	for _, alias := range table {
		for _, kw := range alias.Keywords {
			if containsPhrase(words, kw) {
				return alias, true
			}
		}
	}
	return subjectAlias{}, false
}

// matchesName reports whether a stored subject name belongs to the alias.
func (a subjectAlias) matchesName(name string) bool {
	if strings.Contains(strings.ToLower(name), a.Subject) {
		return true
	}
	words := wordsOf(name)
	for _, kw := range a.Keywords {
		if containsPhrase(words, kw) {
			return true
		}
	}
	return false
}

// wordsOf lowercases s and joins its alphanumeric runs with single spaces.
func wordsOf(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

func containsPhrase(words, phrase string) bool {
	padded := " " + words + " "
	return strings.Contains(padded, " "+phrase+" ") || strings.Contains(padded, " "+phrase+"s ")
}

// Title returns the canonical subject with each word capitalised.
func (a subjectAlias) Title() string {
	return titleCase(a.Subject)
}

// normalizeSubject lowercases and trims a subject name and drops one trailing
// "s" so that "Operating Systems" and "operating system" compare equal.
// Distinct names differing only by a final "s" are merged as a result.
func normalizeSubject(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(strings.ToLower(name)), "s")
}

// subjectsEquivalent reports whether a detected subject refers to a stored one.
func subjectsEquivalent(detected, actual string) bool {
	if normalizeSubject(detected) == normalizeSubject(actual) {
		return true
	}
	return strings.Contains(strings.ToLower(actual), strings.ToLower(detected))
}

// dedupeBySubject keeps the first item for each normalised subject name.
func dedupeBySubject[T any](items []T, name func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := normalizeSubject(name(item))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// matchCatalogSubject finds a catalogue subject named in msg by full name,
// plural name, or subject code as a whole word.
func matchCatalogSubject(msg string, subjects []models.Subject) (string, bool) {
	msg = strings.ToLower(msg)
	words := strings.Fields(msg)
	for _, subject := range subjects {
		name := strings.ToLower(strings.TrimSpace(subject.SubjectName))
		if name == "" {
			continue
		}
		if strings.Contains(msg, name) || strings.Contains(msg, name+"s") {
			return subject.SubjectName, true
		}
		if subject.SubjectCode == nil {
			continue
		}
		code := strings.ToLower(strings.TrimSpace(*subject.SubjectCode))
		if code == "" {
			continue
		}
		for _, word := range words {
			if word == code {
				return subject.SubjectName, true
			}
		}
	}
	return "", false
}
