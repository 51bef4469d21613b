package amazon

import (
	"context"
	"strings"

	"jobharvest/internal/filter"
	"jobharvest/internal/scraper"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const baseURL = "https://www.amazon.jobs"

type Adapter struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) Name() string {
	return "Amazon"
}

func (a *Adapter) Extract(ctx context.Context, page playwright.Page) ([]scraper.Job, error) {
	var jobs []scraper.Job
	a.log.Info("Using Amazon extraction method")

	//unavailable-page check
	unavailable := page.Locator(`text=page you're looking for is not available`).First()
	if visible, _ := unavailable.IsVisible(playwright.LocatorIsVisibleOptions{
		Timeout: playwright.Float(3000),
	}); visible {
		a.log.Warn("⚠️ Amazon page unavailable (404)")
		return nil, nil
	}

	//wait for job links to appear
	if _, err := page.WaitForSelector(`a[href*="/jobs/"]`, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		a.log.Warn("⚠️ Amazon job links not found")
		return nil, nil
	}

	links := scraper.CollectLinks(page, `a[href*="/jobs/"]`)
	a.log.Infof("Found %d Amazon job links", len(links))
	if len(links) == 0 {
		a.log.Warn("⚠️ Amazon returned zero job links")
		return nil, nil
	}

	for idx, link := range links {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}
		a.log.Infof("Processing Amazon job %d/%d", idx+1, len(links))

		link = scraper.AbsoluteLink(baseURL, link)
		job, err := a.extractDetail(page, link)
		if err != nil {
			//one candidate failing never aborts the rest
			a.log.Errorf("❌ Error extracting Amazon job %d: %v", idx+1, err)
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

	//title fallback chain ends at the URL slug
	title := scraper.FirstText(page, "h1.title", "h1")
	if title == "" {
		if pageTitle, err := page.Title(); err == nil {
			title = strings.TrimSpace(pageTitle)
		}
	}
	if title == "" {
		title = scraper.TitleFromSlug(link)
	}

	location := a.extractLocation(page)
	posted := a.extractPosted(page)
	minReq := sectionText(page, `h2:has-text("Basic Qualifications") + p`)
	goodToHave := sectionText(page, `h2:has-text("Preferred Qualifications") + p`)
	description := scraper.Truncate(descriptionText(page), 500)

	heuristicText := strings.Join([]string{minReq, goodToHave, description}, " ")

	job := &scraper.Job{
		ID:                  scraper.ComputeID(link),
		Link:                link,
		Title:               title,
		Company:             "Amazon",
		Location:            location,
		Posted:              posted,
		MinimumRequirements: minReq,
		GoodToHave:          goodToHave,
		Description:         description,
		YearsOfExperience:   filter.ExtractYears(heuristicText),
		Keywords:            filter.ExtractKeywords(heuristicText, title, scraper.MaxKeywords),
		Source:              a.Name(),
	}
	return job, nil
}

func (a *Adapter) extractLocation(page playwright.Page) string {
	items, err := page.Locator("ul.associations li.association-wrapper ul.association-content li").All()
	if err != nil {
		return ""
	}
	var parts []string
	for _, li := range items {
		text, err := li.TextContent()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ", ")
}

func (a *Adapter) extractPosted(page playwright.Page) string {
	text, err := page.Locator(`span[data-testid="posted-date"]`).First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(2000),
	})
	if err != nil {
		return ""
	}
	text = strings.TrimPrefix(strings.TrimSpace(text), "Posted:")
	if idx := strings.Index(text, "("); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// sectionText reads the paragraph following a known heading, or "".
func sectionText(page playwright.Page, selector string) string {
	text, err := page.Locator(selector).First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(2000),
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// descriptionText prefers the section under a description heading and
// falls back to the start of the body text.
func descriptionText(page playwright.Page) string {
	heading := page.Locator(`h2:has-text("Job Description"), h2:has-text("Description"), h3:has-text("Job Description")`).First()
	if count, _ := heading.Count(); count > 0 {
		if v, err := heading.Evaluate(`el => el.nextElementSibling?.textContent || ""`, nil); err == nil {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return scraper.BodyText(page, 500)
}
