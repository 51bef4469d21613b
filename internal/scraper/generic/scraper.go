// Adaptive adapter for arbitrary career sites: no hand-written
// selectors per host, just anchor harvesting plus the learned
// per-host link filters.

package generic

import (
	"context"
	"strings"

	"jobharvest/internal/config"
	"jobharvest/internal/filter"
	"jobharvest/internal/linkfilter"
	"jobharvest/internal/scraper"
	"jobharvest/utils"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

type Adapter struct {
	site     config.SiteConfig
	profiles *linkfilter.ProfileStore
	log      *zap.SugaredLogger
}

func New(site config.SiteConfig, profiles *linkfilter.ProfileStore, log *zap.SugaredLogger) *Adapter {
	return &Adapter{site: site, profiles: profiles, log: log}
}

func (a *Adapter) Name() string {
	return a.site.Name
}

func (a *Adapter) Extract(ctx context.Context, page playwright.Page) ([]scraper.Job, error) {
	a.log.Infof("Using generic extraction method for %s", a.site.Name)
	utils.ScrollToBottom(page)

	candidates := collectAnchors(page)
	a.log.Infof("Found %d candidate links on %s", len(candidates), a.site.URL)

	hostKey := linkfilter.HostKey(a.site.URL)
	profile, cached := a.profiles.Get(hostKey)
	if cached {
		a.log.Infof("Using cached filter profile for %s", hostKey)
	} else {
		profile = linkfilter.Infer(candidates)
		a.profiles.Put(hostKey, profile)
		a.log.Infof("Inferred filter profile for %s: include=%v", hostKey, profile.IncludePatterns)
	}

	filtered := linkfilter.Apply(candidates, profile)
	a.log.Infof("Filtered to %d job-like links", len(filtered))

	//drill into listing pages; fall back to the filtered set when
	//expansion finds nothing
	fetch := func(pageURL string) []string {
		if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(15000),
		}); err != nil {
			a.log.Warnf("⚠️ Listing expansion navigation failed for %s: %v", pageURL, err)
			return nil
		}
		utils.ScrollToBottom(page)
		return collectAnchors(page)
	}
	jobLinks := linkfilter.ExpandListings(fetch, filtered, profile)
	if len(jobLinks) == 0 {
		jobLinks = filtered
	}
	a.log.Infof("Processing %d job-detail links for %s", len(jobLinks), a.site.Name)

	var jobs []scraper.Job
	for idx, link := range jobLinks {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}
		a.log.Infof("Processing %s job %d/%d", a.site.Name, idx+1, len(jobLinks))

		job, err := a.extractDetail(page, link)
		if err != nil {
			a.log.Errorf("❌ Error extracting %s job %d: %v", a.site.Name, idx+1, err)
			continue
		}
		jobs = append(jobs, *job)
	}

	return jobs, nil
}

func (a *Adapter) extractDetail(page playwright.Page, link string) (*scraper.Job, error) {
	if _, err := page.Goto(link, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(15000),
	}); err != nil {
		return nil, err
	}
	utils.RandomDelay(300, 800)

	title := scraper.FirstText(page, "h1", `[class*="title"]`)
	if title == "" {
		if pageTitle, err := page.Title(); err == nil {
			title = strings.TrimSpace(pageTitle)
		}
	}
	if title == "" {
		title = scraper.TitleFromSlug(link)
	}

	location := scraper.SafeText(page, `[class*="location"]`)
	posted := scraper.SafeText(page, `[class*="posted"], [class*="date"]`)

	minReq := scraper.SafeText(page, `[class*="requirement"], [class*="qualification"]`)
	if minReq == "" {
		minReq = scraper.BodyText(page, 500)
	}

	description := scraper.BodyText(page, 500)
	heuristicText := minReq + " " + description

	job := &scraper.Job{
		ID:                  scraper.ComputeID(link),
		Link:                link,
		Title:               scraper.Truncate(title, 100),
		Company:             a.site.Name,
		Location:            scraper.Truncate(location, 150),
		Posted:              scraper.Truncate(posted, 50),
		MinimumRequirements: scraper.Truncate(minReq, 300),
		Description:         description,
		YearsOfExperience:   filter.ExtractYears(heuristicText),
		Keywords:            filter.ExtractKeywords(heuristicText, title, scraper.MaxKeywords),
		Source:              a.site.Name,
	}
	return job, nil
}

func collectAnchors(page playwright.Page) []string {
	result, err := page.Evaluate(
		`() => [...new Set([...document.querySelectorAll('a[href]')].map(e => e.href))]`,
	)
	if err != nil {
		return nil
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil
	}
	var links []string
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			links = append(links, s)
		}
	}
	return links
}
