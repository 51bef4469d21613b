// Adaptive link classification for generic career sites: heuristic
// include/exclude pattern inference, listing-page expansion, and a
// per-host cap on job-detail links.

package linkfilter

import (
	"net/url"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultMaxJobs caps job-detail links processed per run for a host.
const DefaultMaxJobs = 20

// maxListingExpansions bounds how many listing-like pages get their
// anchors fetched during expansion.
const maxListingExpansions = 5

// FilterProfile holds the learned URL rules for one host. Persisted by
// ProfileStore keyed on the normalized host name.
type FilterProfile struct {
	//IncludePatterns: candidate must contain at least one (if any set).
	IncludePatterns []string `json:"include_patterns"`
	//ExcludePatterns: candidate must contain none.
	ExcludePatterns []string `json:"exclude_patterns"`
	//TitleMustContain is reserved; carried through the store untouched.
	TitleMustContain []string `json:"title_must_contain,omitempty"`
	MaxJobs          int      `json:"max_jobs"`
}

// includeHints are path fragments that mark a link as job-related when
// inferring a fresh profile. ATS vendor hosts count as well.
var includeHints = []string{
	"/job", "/jobs", "/career", "/careers", "/position", "/opening",
	"/vacanc", "/search", "/requisition", "/opportunit",
	"greenhouse.io", "lever.co", "workday", "myworkdayjobs",
	"smartrecruiters", "icims.com", "jobvite.com", "ashbyhq.com",
	"bamboohr.com", "recruitee.com", "workable.com",
}

// defaultIncludes apply when no hint matches any candidate at all.
var defaultIncludes = []string{"/job", "/career", "/position", "/opening"}

// defaultExcludes start every inferred profile's blocklist.
var defaultExcludes = []string{
	"/about", "/blog", "/news", "/press", "/event", "/privacy",
	"/terms", "/legal", "/contact", "/investor", "/cookie", "/sitemap",
	"/login", "/signin", "/faq",
}

// listingTokens mark URLs that enumerate jobs rather than describe one.
var listingTokens = []string{"/search", "/jobs", "/careers", "/openings", "/vacancies", "/positions", "search-results", "job-search"}

// detailTokens mark URLs that look like a single job posting.
var detailTokens = []string{
	"/job/", "/jobs/", "/position/", "/posting/", "/requisition",
	"/opening/", "jobid=", "job_id=", "greenhouse.io", "lever.co",
	"myworkdayjobs", "smartrecruiters", "icims.com", "ashbyhq.com",
}

// barePaths are placeholder URLs excluded regardless of patterns.
var barePaths = map[string]bool{
	"": true, "/": true, "/careers": true, "/careers/": true,
	"/jobs": true, "/jobs/": true,
}

// HostKey normalizes a URL down to the profile-store key: lowercased
// host with any leading www. stripped.
func HostKey(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(rawURL), "www."))
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// Infer builds a FilterProfile from one run's candidate links: every
// include hint present in at least one candidate is kept, with a
// hard-coded fallback when nothing matches. Exclude patterns always
// start from the default blocklist.
func Infer(candidates []string) FilterProfile {
	lowered := make([]string, len(candidates))
	for i, link := range candidates {
		lowered[i] = strings.ToLower(link)
	}

	var includes []string
	for _, hint := range includeHints {
		for _, link := range lowered {
			if strings.Contains(link, hint) {
				includes = append(includes, hint)
				break
			}
		}
	}
	if len(includes) == 0 {
		includes = append(includes, defaultIncludes...)
	}

	excludes := make([]string, len(defaultExcludes))
	copy(excludes, defaultExcludes)

	return FilterProfile{
		IncludePatterns: includes,
		ExcludePatterns: excludes,
		MaxJobs:         DefaultMaxJobs,
	}
}

// Apply keeps candidate links that satisfy the profile: at least one
// include pattern (when the list is non-empty), zero exclude patterns,
// and not a bare root/careers/jobs placeholder. Order-preserving
// dedupe, truncated to MaxJobs.
func Apply(links []string, profile FilterProfile) []string {
	maxJobs := profile.MaxJobs
	if maxJobs <= 0 {
		maxJobs = DefaultMaxJobs
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	var kept []string
	for _, link := range links {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		lowered := strings.ToLower(link)

		if isBarePath(link) {
			continue
		}
		if len(profile.IncludePatterns) > 0 && !containsAny(lowered, profile.IncludePatterns) {
			continue
		}
		if containsAny(lowered, profile.ExcludePatterns) {
			continue
		}
		if !seen.Add(link) {
			continue
		}
		kept = append(kept, link)
		if len(kept) >= maxJobs {
			break
		}
	}
	return kept
}

// AnchorFetcher fetches the anchor hrefs found on a page. Supplied by
// the generic adapter so expansion stays browser-agnostic here.
type AnchorFetcher func(pageURL string) []string

// ExpandListings drills into up to five listing-like pages among the
// filtered links and collects anchors that look like job-detail URLs.
// An empty result means the caller should stick with the filtered set.
func ExpandListings(fetch AnchorFetcher, links []string, profile FilterProfile) []string {
	maxJobs := profile.MaxJobs
	if maxJobs <= 0 {
		maxJobs = DefaultMaxJobs
	}

	var listings []string
	for _, link := range links {
		if looksLikeListing(link) {
			listings = append(listings, link)
			if len(listings) >= maxListingExpansions {
				break
			}
		}
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	var details []string
	for _, listing := range listings {
		for _, anchor := range fetch(listing) {
			if !containsAny(strings.ToLower(anchor), detailTokens) {
				continue
			}
			if !seen.Add(anchor) {
				continue
			}
			details = append(details, anchor)
			if len(details) >= maxJobs {
				return details
			}
		}
	}
	return details
}

func looksLikeListing(link string) bool {
	lowered := strings.ToLower(link)
	if !containsAny(lowered, listingTokens) {
		return false
	}
	return !containsAny(lowered, detailTokens)
}

func isBarePath(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	//a query string means a concrete listing page, not a placeholder
	if u.RawQuery != "" {
		return false
	}
	return barePaths[strings.ToLower(u.Path)]
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(s, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
