package linkfilter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	profile := FilterProfile{
		IncludePatterns: []string{"/job"},
		ExcludePatterns: []string{"/about"},
		MaxJobs:         20,
	}
	candidates := []string{
		"https://x.com/job/123",
		"https://x.com/about",
		"https://x.com/",
	}

	filtered := Apply(candidates, profile)

	assert.Equal(t, []string{"https://x.com/job/123"}, filtered)
}

func TestApply_DedupeAndCap(t *testing.T) {
	profile := FilterProfile{
		IncludePatterns: []string{"/job"},
		MaxJobs:         2,
	}
	candidates := []string{
		"https://x.com/job/1",
		"https://x.com/job/1",
		"https://x.com/job/2",
		"https://x.com/job/3",
	}

	filtered := Apply(candidates, profile)

	assert.Equal(t, []string{"https://x.com/job/1", "https://x.com/job/2"}, filtered)
}

func TestApply_EmptyIncludesKeepsAll(t *testing.T) {
	profile := FilterProfile{ExcludePatterns: []string{"/blog"}, MaxJobs: 20}
	filtered := Apply([]string{"https://x.com/anything/here", "https://x.com/blog/post"}, profile)
	assert.Equal(t, []string{"https://x.com/anything/here"}, filtered)
}

func TestApply_BarePlaceholdersExcluded(t *testing.T) {
	profile := FilterProfile{IncludePatterns: []string{"/job", "/career"}, MaxJobs: 20}
	filtered := Apply([]string{
		"https://x.com/careers",
		"https://x.com/jobs/",
		"https://x.com/careers/engineering-roles",
	}, profile)
	assert.Equal(t, []string{"https://x.com/careers/engineering-roles"}, filtered)
}

func TestInfer(t *testing.T) {
	candidates := []string{
		"https://x.com/careers/search?q=data",
		"https://x.com/about",
		"https://boards.greenhouse.io/xcorp/jobs/1",
	}

	profile := Infer(candidates)

	assert.Contains(t, profile.IncludePatterns, "/career")
	assert.Contains(t, profile.IncludePatterns, "greenhouse.io")
	assert.NotContains(t, profile.IncludePatterns, "lever.co")
	//exclude blocklist always present
	assert.Contains(t, profile.ExcludePatterns, "/about")
	assert.Contains(t, profile.ExcludePatterns, "/privacy")
	assert.Equal(t, DefaultMaxJobs, profile.MaxJobs)
}

func TestInfer_FallbackIncludes(t *testing.T) {
	profile := Infer([]string{"https://x.com/one", "https://x.com/two"})
	assert.Equal(t, []string{"/job", "/career", "/position", "/opening"}, profile.IncludePatterns)
}

func TestExpandListings(t *testing.T) {
	fetched := map[string][]string{
		"https://x.com/careers/search-results": {
			"https://x.com/job/123",
			"https://x.com/job/123",
			"https://x.com/about",
			"https://boards.greenhouse.io/xcorp/jobs/9",
		},
	}
	fetch := func(pageURL string) []string { return fetched[pageURL] }

	profile := FilterProfile{MaxJobs: 20}
	links := []string{
		"https://x.com/careers/search-results",
		"https://x.com/job/55", //already a detail page, not expanded
	}

	details := ExpandListings(fetch, links, profile)

	assert.Equal(t, []string{
		"https://x.com/job/123",
		"https://boards.greenhouse.io/xcorp/jobs/9",
	}, details)
}

func TestExpandListings_EmptyWhenNoListings(t *testing.T) {
	fetch := func(string) []string { return nil }
	details := ExpandListings(fetch, []string{"https://x.com/job/1"}, FilterProfile{MaxJobs: 20})
	assert.Empty(t, details)
}

func TestHostKey(t *testing.T) {
	assert.Equal(t, "x.com", HostKey("https://www.X.com/careers"))
	assert.Equal(t, "jobs.example.org", HostKey("https://jobs.example.org/"))
}

func TestProfileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site_profiles.json")

	store := NewProfileStore(path)
	_, ok := store.Get("x.com")
	assert.False(t, ok)

	profile := Infer([]string{"https://x.com/job/1"})
	store.Put("x.com", profile)
	require.NoError(t, store.Save())

	//second run loads the cached profile verbatim, no re-inference
	reloaded := NewProfileStore(path)
	got, ok := reloaded.Get("x.com")
	require.True(t, ok)
	assert.Equal(t, profile.IncludePatterns, got.IncludePatterns)
	assert.Equal(t, profile.ExcludePatterns, got.ExcludePatterns)
	assert.Equal(t, profile.MaxJobs, got.MaxJobs)
}
