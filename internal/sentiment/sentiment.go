// Package sentiment labels feedback text by keyword matching. It is a
// fixed heuristic, not a model: deterministic, total over any input.
package sentiment

import "strings"

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// One shared keyword table for both per-record labels and aggregate
// counts.
var (
	positiveWords = []string{"good", "great", "excellent", "awesome", "nice", "amazing", "satisfied", "better"}
	negativeWords = []string{"bad", "poor", "terrible", "worst"}
	// Recognized explicitly, but neutral is the default anyway so these
	// only document the bucket.
	neutralWords = []string{"average", "ok", "fine"}
)

// Classify labels text: positive keywords win, then negative, else
// neutral. Matching is case-insensitive substring containment; the empty
// string is neutral.
func Classify(text string) Label {
	t := strings.ToLower(text)
	if containsAny(t, positiveWords) {
		return Positive
	}
	if containsAny(t, negativeWords) {
		return Negative
	}
	return Neutral
}

// Keywords returns the match set for a label.
func Keywords(label Label) []string {
	switch label {
	case Positive:
		return append([]string(nil), positiveWords...)
	case Negative:
		return append([]string(nil), negativeWords...)
	case Neutral:
		return append([]string(nil), neutralWords...)
	}
	return nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
