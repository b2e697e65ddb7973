package nlp

import "strings"

// NormalizeLabel turns a label (skill, qualification, job title) into its comparison form:
// lower case, outer whitespace trimmed. Inner whitespace is kept.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EqualLabels compares two labels ignoring case and outer whitespace.
func EqualLabels(a, b string) bool {
	return NormalizeLabel(a) == NormalizeLabel(b)
}
