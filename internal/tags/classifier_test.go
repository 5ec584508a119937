package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected []string
	}{
		{
			name:     "ai and mobile",
			message:  "I want an AI powered mobile app using machine learning",
			expected: []string{"AI/ML", "Mobile"},
		},
		{
			name:     "cloud keyword",
			message:  "We are migrating to AWS next quarter",
			expected: []string{"Cloud"},
		},
		{
			name:     "data science",
			message:  "Need help with data analytics pipelines",
			expected: []string{"Data Science"},
		},
		{
			name:     "security and compliance",
			message:  "SOC2 compliance audit support",
			expected: []string{"Security"},
		},
		{
			name:     "web development",
			message:  "Redesign our website frontend",
			expected: []string{"Web Development"},
		},
		{
			name:     "case insensitive",
			message:  "MACHINE LEARNING consulting",
			expected: []string{"AI/ML"},
		},
		{
			name:     "no keywords",
			message:  "Hello there, good morning",
			expected: nil,
		},
		{
			name:     "empty message",
			message:  "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.message))
		})
	}
}

func TestClassifyMultipleLabels(t *testing.T) {
	got := Classify("security review for a cloud data platform with a mobile web app")
	assert.ElementsMatch(t, []string{"Cloud", "Data Science", "Security", "Mobile", "Web Development"}, got)
}

func TestClassifyLabelAppearsOnce(t *testing.T) {
	// several keywords of one set must not duplicate the label
	got := Classify("web website frontend")
	assert.Equal(t, []string{"Web Development"}, got)
}
