package proxy

import "strings"

// Substitution replaces every literal occurrence of Match with Replacement
type Substitution struct {
	Match       string
	Replacement string
}

// Substitutions is an ordered table applied in sequence
type Substitutions []Substitution

// DefaultSubstitutions is the fixed case-preserving mapping
var DefaultSubstitutions = Substitutions{
	{Match: "Yale", Replacement: "Fale"},
	{Match: "yale", Replacement: "fale"},
	{Match: "YALE", Replacement: "FALE"},
}

// Apply runs each substitution over text in table order
func (s Substitutions) Apply(text string) string {
	for _, sub := range s {
		text = strings.ReplaceAll(text, sub.Match, sub.Replacement)
	}
	return text
}
