package pgcareers

import (
	"context"
	"strings"

	"jobharvest/internal/filter"
	"jobharvest/internal/scraper"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const (
	baseURL = "https://www.pgcareers.com"
	//maxJobs bounds detail navigations per run
	maxJobs = 15
)

type Adapter struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) Name() string {
	return "P&G Careers"
}

func (a *Adapter) Extract(ctx context.Context, page playwright.Page) ([]scraper.Job, error) {
	var jobs []scraper.Job
	a.log.Info("Using P&G Careers extraction method")

	links := scraper.CollectLinks(page, `a[href*="/job/"]`)
	var jobLinks []string
	for _, link := range links {
		if strings.Contains(link, "/job/") {
			jobLinks = append(jobLinks, link)
		}
	}
	a.log.Infof("Found %d unique P&G job links", len(jobLinks))

	if len(jobLinks) > maxJobs {
		jobLinks = jobLinks[:maxJobs]
	}

	for idx, link := range jobLinks {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}

		link = scraper.AbsoluteLink(baseURL, link)
		a.log.Infof("Processing P&G job %d/%d: %s", idx+1, len(jobLinks), scraper.Truncate(link, 80))

		job, err := a.extractDetail(page, link)
		if err != nil {
			a.log.Errorf("❌ Error extracting P&G job %d: %v", idx+1, err)
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

	//requirements selector first, body-text slice as the fallback
	minReq := scraper.SafeText(page, `[class*="requirement"], [class*="qualification"]`)
	if minReq == "" {
		minReq = scraper.BodyText(page, 500)
	}

	description := descriptionText(page)
	heuristicText := minReq + " " + description

	job := &scraper.Job{
		ID:                  scraper.ComputeID(link),
		Link:                link,
		Title:               scraper.Truncate(title, 100),
		Company:             "P&G",
		Location:            scraper.Truncate(location, 150),
		Posted:              scraper.Truncate(posted, 50),
		MinimumRequirements: scraper.Truncate(minReq, 300),
		Description:         scraper.Truncate(description, 500),
		YearsOfExperience:   filter.ExtractYears(heuristicText),
		Keywords:            filter.ExtractKeywords(heuristicText, title, scraper.MaxKeywords),
		Source:              a.Name(),
	}
	return job, nil
}

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
