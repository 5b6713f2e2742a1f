package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Label
	}{
		{"positive keyword", "This is a great product", Positive},
		{"negative keyword", "Terrible service", Negative},
		{"empty string", "", Neutral},
		{"explicit neutral keyword", "It was fine", Neutral},
		{"no keywords", "delivered on a Tuesday", Neutral},
		{"case insensitive", "EXCELLENT support", Positive},
		{"satisfied counts as positive", "I am satisfied with the warranty", Positive},
		{"better counts as positive", "much better than last time", Positive},
		{"positive wins over negative", "good product, bad packaging", Positive},
		{"substring match", "the worst experience", Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "awesome maintenance, would recommend"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestKeywords(t *testing.T) {
	assert.Contains(t, Keywords(Positive), "satisfied")
	assert.Contains(t, Keywords(Negative), "worst")
	assert.Contains(t, Keywords(Neutral), "average")
	assert.Nil(t, Keywords(Label("unknown")))

	// Returned slices are copies; mutating one must not poison the table.
	words := Keywords(Positive)
	words[0] = "mutated"
	assert.Equal(t, Positive, Classify("good"))
}
