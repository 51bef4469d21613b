package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYears(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "Range returns minimum bound",
			text:     "3-5 years of experience",
			expected: "3",
		},
		{
			name:     "Range with to",
			text:     "We need 2 to 4 years of experience in backend work",
			expected: "2",
		},
		{
			name:     "Minimum of with plus",
			text:     "minimum of 5+ years experience",
			expected: "5",
		},
		{
			name:     "At least form",
			text:     "At least 7 years of experience with distributed systems",
			expected: "7",
		},
		{
			name:     "Plus yrs exp",
			text:     "4+ yrs exp required",
			expected: "4",
		},
		{
			name:     "Experience of N years",
			text:     "Hands-on experience of 6 years is preferred",
			expected: "6",
		},
		{
			name:     "No mention",
			text:     "no mention of experience",
			expected: "",
		},
		{
			name:     "Exceeds sanity cap",
			text:     "45 years experience",
			expected: "",
		},
		{
			name:     "Zero rejected",
			text:     "0 years experience welcome",
			expected: "",
		},
		{
			name:     "First match wins",
			text:     "2 years experience preferred, 8 years experience for the senior track",
			expected: "2",
		},
		{
			name:     "Messy whitespace",
			text:     "Minimum   of\n5 YEARS\texperience",
			expected: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractYears(tt.text))
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	text := "Looking for a Python developer with AWS and Docker skills"
	title := "Backend Engineer"

	keywords := ExtractKeywords(text, title, 15)

	assert.Contains(t, keywords, "Python")
	assert.Contains(t, keywords, "AWS")
	assert.Contains(t, keywords, "Docker")
	//order follows first appearance in title + text
	assert.Equal(t, []string{"Python", "AWS", "Docker"}, keywords)
}

func TestExtractKeywords_NoDuplicates(t *testing.T) {
	text := "Python, python and PYTHON again, plus SQL and sql"
	keywords := ExtractKeywords(text, "", 15)
	assert.Equal(t, []string{"Python", "SQL"}, keywords)
}

func TestExtractKeywords_Cap(t *testing.T) {
	text := "python java javascript typescript golang rust ruby php scala kotlin " +
		"react angular vue django flask spring mysql redis kafka docker aws"
	keywords := ExtractKeywords(text, "", 15)
	assert.Len(t, keywords, 15)
}

func TestExtractKeywords_WholeWordOnly(t *testing.T) {
	//"javan" and "restful" must not trigger the java or rest terms
	keywords := ExtractKeywords("javan culture, restful sleep", "", 15)
	assert.NotContains(t, keywords, "JAVA")
	assert.NotContains(t, keywords, "REST")
}
