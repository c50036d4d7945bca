package studio

import "strings"

// Keyword vocabularies for workflow classification. Turkish first: most
// catalog product names arrive in Turkish, with English mixed in.
var (
	setKeywords = []string{
		"takım", "pijama", "eşofman takımı", "bikini", "set", "suit",
	}
	fullBodyKeywords = []string{
		"elbise", "tulum", "romper", "kaban", "palto", "trençkot",
		"dress", "jumpsuit", "coat", "gown",
	}
	lowerKeywords = []string{
		"pantolon", "şort", "etek", "tayt", "jean",
		"trousers", "skirt", "shorts", "leggings", "joggers", "denim",
	}
)

// Classify infers the garment workflow type from a product name. An explicit
// override always wins. Otherwise the keyword sets are tested in priority
// order: set beats full-body/dress ("pijama takımı" is a set, not a dress),
// full-body beats lower, and anything unmatched defaults to upper. Always
// returns a valid workflow type.
func Classify(productName string, override WorkflowType) WorkflowType {
	switch override {
	case WorkflowUpper, WorkflowLower, WorkflowDress, WorkflowSet:
		return override
	}

	lowerName := strings.ToLower(productName)

	if containsAny(lowerName, setKeywords) {
		return WorkflowSet
	}
	if containsAny(lowerName, fullBodyKeywords) {
		return WorkflowDress
	}
	if containsAny(lowerName, lowerKeywords) {
		return WorkflowLower
	}
	return WorkflowUpper
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
