package linkedin

import (
	"context"
	"strings"

	"jobharvest/internal/filter"
	"jobharvest/internal/scraper"
	"jobharvest/utils"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// maxJobs bounds the run; LinkedIn search pages can list hundreds.
const maxJobs = 50

type Adapter struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) Name() string {
	return "LinkedIn"
}

func (a *Adapter) Extract(ctx context.Context, page playwright.Page) ([]scraper.Job, error) {
	var jobs []scraper.Job
	a.log.Info("Using LinkedIn extraction method")

	if _, err := page.WaitForSelector(
		"ul.jobs-search__results-list, .jobs-search-results__list, div.jobs-search-results-list",
		playwright.PageWaitForSelectorOptions{Timeout: playwright.Float(10000)},
	); err != nil {
		a.log.Warn("⚠️ LinkedIn job list not visible yet")
	}
	utils.ScrollToBottom(page)

	links := collectJobLinks(page)
	a.log.Infof("Found %d LinkedIn job links", len(links))
	if len(links) == 0 {
		a.log.Warn("⚠️ No LinkedIn job links found on page")
		return nil, nil
	}

	if len(links) > maxJobs {
		links = links[:maxJobs]
	}

	for idx, link := range links {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}
		a.log.Infof("Processing LinkedIn job %d/%d", idx+1, len(links))

		job, err := a.extractDetail(page, link)
		if err != nil {
			a.log.Errorf("❌ Error extracting LinkedIn job %d: %v", idx+1, err)
			continue
		}
		jobs = append(jobs, *job)
	}

	return jobs, nil
}

// collectJobLinks evaluates in-page so href resolution and dedupe
// happen in one round trip.
func collectJobLinks(page playwright.Page) []string {
	result, err := page.Evaluate(
		`() => [...new Set([...document.querySelectorAll('a[href*="/jobs/view/"], a[href*="/jobs/"]')].map(e => e.href))]`,
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

func (a *Adapter) extractDetail(page playwright.Page, link string) (*scraper.Job, error) {
	if _, err := page.Goto(link, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(15000),
	}); err != nil {
		return nil, err
	}
	utils.RandomDelay(800, 1500)

	title := scraper.FirstText(page,
		"h1.jobs-unified-top-card__job-title",
		"h1.topcard__title",
		"h1",
	)
	if title == "" {
		title = scraper.TitleFromSlug(link)
	}

	company := scraper.FirstText(page,
		"a.jobs-unified-top-card__company-name",
		"a.topcard__org-name-link",
		"span.jobs-unified-top-card__company-name",
	)
	location := scraper.FirstText(page,
		"span.jobs-unified-top-card__company-location",
		"span.topcard__flavor--bullet",
		"span.jobs-unified-top-card__bullet",
	)
	posted := scraper.FirstText(page,
		"span.posted-time-ago__text",
		"span.jobs-unified-top-card__posted-date",
	)

	description := scraper.FirstText(page,
		"div.description__text",
		"div.jobs-description-content__text",
		"div.show-more-less-html__markup",
	)
	description = scraper.Truncate(strings.TrimSpace(description), 1000)

	job := &scraper.Job{
		ID:                scraper.ComputeID(link),
		Link:              link,
		Title:             title,
		Company:           company,
		Location:          location,
		Posted:            posted,
		Description:       description,
		YearsOfExperience: filter.ExtractYears(description),
		Keywords:          filter.ExtractKeywords(description, title, scraper.MaxKeywords),
		Source:            a.Name(),
	}
	return job, nil
}
