package config

import "strings"

// SiteType is the closed set of adapter kinds. Dispatch happens through
// an explicit lookup table in the runner, never by reflection.
type SiteType string

const (
	SiteAmazon    SiteType = "amazon"
	SitePGCareers SiteType = "pg_careers"
	SiteLinkedIn  SiteType = "linkedin"
	SiteGeneric   SiteType = "generic"
)

// KnownSiteType reports whether t names a registered adapter kind.
func KnownSiteType(t SiteType) bool {
	switch t {
	case SiteAmazon, SitePGCareers, SiteLinkedIn, SiteGeneric:
		return true
	}
	return false
}

// SiteConfig describes one crawl target. It is immutable during a run;
// execution-derived state (inferred filters, profile key) lives in the
// runner's per-site RunState instead.
type SiteConfig struct {
	Name    string   `json:"name" yaml:"name"`
	Type    SiteType `json:"type" yaml:"type"`
	URL     string   `json:"url" yaml:"url"`
	Enabled bool     `json:"enabled" yaml:"enabled"`

	//Optional playwright storage_state file for authenticated sessions.
	//Absent or missing file means proceed unauthenticated.
	StorageStatePath string `json:"storage_state,omitempty" yaml:"storage_state,omitempty"`
}

// DefaultSites returns the built-in crawl targets.
func DefaultSites(linkedInStatePath string) []SiteConfig {
	return []SiteConfig{
		{
			Name:    "Amazon Jobs",
			Type:    SiteAmazon,
			URL:     "https://www.amazon.jobs/en/search?base_query=&loc_query=India&country=IND&employment_type%5B%5D=Full%20Time",
			Enabled: true,
		},
		{
			Name:    "P&G Careers",
			Type:    SitePGCareers,
			URL:     "https://www.pgcareers.com/global/en/search-results",
			Enabled: true,
		},
		{
			Name:             "LinkedIn Jobs",
			Type:             SiteLinkedIn,
			URL:              "https://www.linkedin.com/jobs/search/?keywords=software%20engineer&location=India",
			Enabled:          true,
			StorageStatePath: linkedInStatePath,
		},
	}
}

// FilterSites keeps only sites whose type matches one of the requested
// tags. An empty filter keeps everything.
func FilterSites(sites []SiteConfig, types []string) []SiteConfig {
	if len(types) == 0 {
		return sites
	}
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	var out []SiteConfig
	for _, s := range sites {
		if allowed[string(s.Type)] {
			out = append(out, s)
		}
	}
	return out
}
