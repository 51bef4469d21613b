package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeID_Stable(t *testing.T) {
	link := "https://www.amazon.jobs/en/jobs/123/software-engineer"

	first := ComputeID(link)
	second := ComputeID(link)

	assert.Equal(t, first, second)
	assert.Len(t, first, 40) //sha1 hex
	assert.NotEqual(t, first, ComputeID(link+"?x=1"))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		job      Job
		expected bool
	}{
		{
			name:     "Complete record",
			job:      Job{ID: "abc", Link: "https://x.com/job/1", Title: "Engineer"},
			expected: true,
		},
		{
			name:     "Empty title",
			job:      Job{ID: "abc", Link: "https://x.com/job/1", Title: "   "},
			expected: false,
		},
		{
			name:     "Missing link",
			job:      Job{ID: "abc", Title: "Engineer"},
			expected: false,
		},
		{
			name:     "Missing id",
			job:      Job{Link: "https://x.com/job/1", Title: "Engineer"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValid(tt.job))
		})
	}
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Senior Data Engineer", TitleFromSlug("https://x.com/job/senior-data-engineer"))
	assert.Equal(t, "Backend Developer", TitleFromSlug("https://x.com/careers/backend_developer?src=nav"))
	//multi-byte first letters must survive capitalization intact
	assert.Equal(t, "Équipe Data", TitleFromSlug("https://x.com/emplois/équipe-data"))
}

func TestAbsoluteLink(t *testing.T) {
	assert.Equal(t, "https://www.amazon.jobs/en/jobs/1", AbsoluteLink("https://www.amazon.jobs", "/en/jobs/1"))
	assert.Equal(t, "https://x.com/job/1", AbsoluteLink("https://www.amazon.jobs", "https://x.com/job/1"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
}

func TestToRow_CoversSchema(t *testing.T) {
	job := Job{
		ID:       "id1",
		Link:     "https://x.com/job/1",
		Title:    "Engineer",
		Keywords: []string{"Python", "AWS"},
		Source:   "Generic",
	}

	row := job.ToRow()

	for _, col := range Columns {
		_, ok := row[col]
		assert.True(t, ok, "schema column %q missing from row", col)
	}
	assert.Equal(t, "Python, AWS", row["Keywords"])
}
