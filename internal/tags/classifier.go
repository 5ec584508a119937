// Package tags derives topical labels from free-text contact messages.
// Classification runs once at submission time and is never recomputed.
package tags

import "strings"

// keywordSets maps each label to the substrings that trigger it. Sets are
// tested independently so multiple labels may apply to one message.
var keywordSets = []struct {
	label    string
	keywords []string
}{
	{"AI/ML", []string{"ai", "machine learning", "ml"}},
	{"Cloud", []string{"cloud", "aws", "azure"}},
	{"Data Science", []string{"data", "analytics", "science"}},
	{"Security", []string{"security", "compliance"}},
	{"Mobile", []string{"mobile", "app"}},
	{"Web Development", []string{"web", "website", "frontend"}},
}

// Classify returns the topical labels whose keywords appear as substrings
// of the lower-cased message. A message matching nothing yields nil.
func Classify(message string) []string {
	lower := strings.ToLower(message)

	var labels []string
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				labels = append(labels, set.label)
				break
			}
		}
	}
	return labels
}
