// Scrape orchestrator: drives each configured site through browser
// start, navigation, extraction and teardown, with composed retries
// and per-site failure isolation.

package runner

import (
	"context"
	"errors"
	"fmt"

	"jobharvest/internal/browser"
	"jobharvest/internal/config"
	"jobharvest/internal/linkfilter"
	"jobharvest/internal/retry"
	"jobharvest/internal/scraper"
	"jobharvest/internal/scraper/amazon"
	"jobharvest/internal/scraper/generic"
	"jobharvest/internal/scraper/linkedin"
	"jobharvest/internal/scraper/pgcareers"
	"jobharvest/utils"

	"go.uber.org/zap"
)

// ErrNoJobs is the only fatal scrape outcome: nothing collected from
// any site.
var ErrNoJobs = errors.New("no jobs were scraped from any site")

// SiteState tracks one site's progress through a run.
type SiteState string

const (
	StatePending        SiteState = "PENDING"
	StateSkipped        SiteState = "SKIPPED"
	StateBrowserStarted SiteState = "BROWSER_STARTED"
	StateNavigated      SiteState = "NAVIGATED"
	StateExtracted      SiteState = "EXTRACTED"
	StateClosed         SiteState = "CLOSED"
)

// RunState is the mutable per-site execution record, kept separate
// from the immutable SiteConfig. When a site fails, State holds the
// furthest stage the pipeline reached before the error.
type RunState struct {
	Site      config.SiteConfig
	State     SiteState
	JobsFound int
	Err       error
}

type Runner struct {
	log      *zap.SugaredLogger
	profiles *linkfilter.ProfileStore
	headless bool
	shots    *utils.ScreenShotDebugger

	//scrapeSite is the per-site pipeline; swappable in tests. It
	//advances state.State as each stage completes.
	scrapeSite func(ctx context.Context, site config.SiteConfig, adapter scraper.Adapter, state *RunState) ([]scraper.Job, error)
}

func New(log *zap.SugaredLogger, profiles *linkfilter.ProfileStore, headless bool) *Runner {
	r := &Runner{
		log:      log,
		profiles: profiles,
		headless: headless,
		shots:    utils.NewScreenShotDebugger(log),
	}
	r.scrapeSite = r.playwrightScrape
	return r
}

// Run processes sites strictly sequentially. One site's total failure
// is logged and skipped; remaining sites still contribute. The batch
// only contains records passing the validation gate.
func (r *Runner) Run(ctx context.Context, sites []config.SiteConfig) ([]scraper.Job, []RunState, error) {
	var batch []scraper.Job
	states := make([]RunState, 0, len(sites))

	for _, site := range sites {
		state := RunState{Site: site, State: StatePending}

		if !site.Enabled {
			r.log.Infof("Skipping %s (disabled)", site.Name)
			state.State = StateSkipped
			states = append(states, state)
			continue
		}

		r.log.Infof("============================================================")
		r.log.Infof("Starting scrape for %s", site.Name)
		r.log.Infof("============================================================")

		adapter, err := r.adapterFor(site)
		if err != nil {
			r.log.Errorf("❌ %v", err)
			state.State = StateSkipped
			state.Err = err
			states = append(states, state)
			continue
		}

		jobs, err := r.scrapeSite(ctx, site, adapter, &state)
		if err != nil {
			r.log.Errorf("❌ Failed to scrape %s: %v", site.Name, err)
			state.Err = err
			states = append(states, state)
			continue
		}
		state.State = StateClosed

		valid := 0
		for _, job := range jobs {
			if !scraper.IsValid(job) {
				r.log.Debugf("Dropping invalid record from %s: %q", site.Name, job.Link)
				continue
			}
			batch = append(batch, job)
			valid++
		}
		state.JobsFound = valid
		states = append(states, state)
		r.log.Infof("✅ Successfully scraped %d valid jobs from %s", valid, site.Name)
	}

	//persist any filter profiles inferred during this run
	if err := r.profiles.Save(); err != nil {
		r.log.Errorf("❌ Failed to save site profiles: %v", err)
	}

	if len(batch) == 0 {
		return nil, states, ErrNoJobs
	}
	return batch, states, nil
}

// adapterFor is the closed dispatch table from site type to adapter.
func (r *Runner) adapterFor(site config.SiteConfig) (scraper.Adapter, error) {
	switch site.Type {
	case config.SiteAmazon:
		return amazon.New(r.log), nil
	case config.SitePGCareers:
		return pgcareers.New(r.log), nil
	case config.SiteLinkedIn:
		return linkedin.New(r.log), nil
	case config.SiteGeneric:
		return generic.New(site, r.profiles, r.log), nil
	default:
		return nil, fmt.Errorf("no adapter for site type %q (%s)", site.Type, site.Name)
	}
}

// playwrightScrape runs one site end to end: browser start, seed-page
// navigation, extraction. The outer retry re-runs the whole pipeline,
// the inner one just the extraction step. Teardown is guaranteed by
// the defers regardless of where a failure happens.
func (r *Runner) playwrightScrape(ctx context.Context, site config.SiteConfig, adapter scraper.Adapter, state *RunState) ([]scraper.Job, error) {
	var jobs []scraper.Job

	err := retry.ScrapePolicy().Do(ctx, r.log, site.Name+" scrape", func() error {
		manager, err := browser.NewManager(r.headless)
		if err != nil {
			return fmt.Errorf("start browser: %w", err)
		}
		defer manager.Close()

		session, err := manager.NewSession(site.StorageStatePath)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}
		defer session.Close()
		state.State = StateBrowserStarted
		r.log.Infof("Browser started for %s (storage_state=%s)", site.Name, storageLabel(site.StorageStatePath))

		if err := browser.Navigate(session.Page, site.URL); err != nil {
			r.shots.CaptureAndLog(session.Page, "nav-failed-"+string(site.Type),
				fmt.Sprintf("🚨 %s: navigation failed", site.Name))
			return err
		}
		state.State = StateNavigated

		return retry.ExtractPolicy().Do(ctx, r.log, site.Name+" extraction", func() error {
			extracted, err := adapter.Extract(ctx, session.Page)
			if err != nil {
				return err
			}
			jobs = extracted
			state.State = StateExtracted
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func storageLabel(path string) string {
	if path == "" {
		return "none"
	}
	return "present"
}
