package runner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"jobharvest/internal/config"
	"jobharvest/internal/linkfilter"
	"jobharvest/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	profiles := linkfilter.NewProfileStore(filepath.Join(t.TempDir(), "profiles.json"))
	return New(zap.NewNop().Sugar(), profiles, true)
}

func genericSite(name string) config.SiteConfig {
	return config.SiteConfig{
		Name:    name,
		Type:    config.SiteGeneric,
		URL:     "https://" + name + ".example/careers",
		Enabled: true,
	}
}

func stubJob(site, n string) scraper.Job {
	link := "https://" + site + ".example/job/" + n
	return scraper.Job{
		ID:     scraper.ComputeID(link),
		Link:   link,
		Title:  "Job " + n,
		Source: site,
	}
}

func TestRun_SiteFailureIsolation(t *testing.T) {
	r := testRunner(t)
	r.scrapeSite = func(_ context.Context, site config.SiteConfig, _ scraper.Adapter, state *RunState) ([]scraper.Job, error) {
		state.State = StateBrowserStarted
		if site.Name == "one" {
			return nil, errors.New("navigation failed")
		}
		state.State = StateNavigated
		state.State = StateExtracted
		return []scraper.Job{stubJob(site.Name, "1")}, nil
	}

	sites := []config.SiteConfig{genericSite("one"), genericSite("two"), genericSite("three")}
	batch, states, err := r.Run(context.Background(), sites)

	//sites two and three still contribute despite site one failing
	require.NoError(t, err)
	assert.Len(t, batch, 2)
	require.Len(t, states, 3)
	assert.Error(t, states[0].Err)
	assert.Equal(t, 1, states[1].JobsFound)
	assert.Equal(t, 1, states[2].JobsFound)
}

func TestRun_StateRecordsFurthestStage(t *testing.T) {
	r := testRunner(t)
	r.scrapeSite = func(_ context.Context, site config.SiteConfig, _ scraper.Adapter, state *RunState) ([]scraper.Job, error) {
		state.State = StateBrowserStarted
		if site.Name == "nav-fails" {
			return nil, errors.New("navigation failed")
		}
		state.State = StateNavigated
		if site.Name == "extract-fails" {
			return nil, errors.New("extraction failed")
		}
		state.State = StateExtracted
		return []scraper.Job{stubJob(site.Name, "1")}, nil
	}

	sites := []config.SiteConfig{
		genericSite("nav-fails"), genericSite("extract-fails"), genericSite("ok"),
	}
	_, states, err := r.Run(context.Background(), sites)

	//a failed site's state names the stage that was reached, a
	//successful one ends up closed
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, StateBrowserStarted, states[0].State)
	assert.Equal(t, StateNavigated, states[1].State)
	assert.Equal(t, StateClosed, states[2].State)
}

func TestRun_ValidationGate(t *testing.T) {
	r := testRunner(t)
	r.scrapeSite = func(_ context.Context, site config.SiteConfig, _ scraper.Adapter, _ *RunState) ([]scraper.Job, error) {
		noTitle := stubJob(site.Name, "2")
		noTitle.Title = "  "
		return []scraper.Job{stubJob(site.Name, "1"), noTitle}, nil
	}

	batch, states, err := r.Run(context.Background(), []config.SiteConfig{genericSite("one")})

	require.NoError(t, err)
	assert.Len(t, batch, 1)
	assert.Equal(t, 1, states[0].JobsFound)
}

func TestRun_DisabledSiteSkipped(t *testing.T) {
	r := testRunner(t)
	called := false
	r.scrapeSite = func(_ context.Context, _ config.SiteConfig, _ scraper.Adapter, _ *RunState) ([]scraper.Job, error) {
		called = true
		return []scraper.Job{stubJob("x", "1")}, nil
	}

	disabled := genericSite("one")
	disabled.Enabled = false
	enabled := genericSite("two")

	_, states, err := r.Run(context.Background(), []config.SiteConfig{disabled, enabled})

	require.NoError(t, err)
	assert.Equal(t, StateSkipped, states[0].State)
	assert.Equal(t, StateClosed, states[1].State)
	assert.True(t, called)
}

func TestRun_AllSitesEmptyIsFatal(t *testing.T) {
	r := testRunner(t)
	r.scrapeSite = func(_ context.Context, _ config.SiteConfig, _ scraper.Adapter, _ *RunState) ([]scraper.Job, error) {
		return nil, nil
	}

	batch, _, err := r.Run(context.Background(), []config.SiteConfig{genericSite("one")})

	assert.ErrorIs(t, err, ErrNoJobs)
	assert.Empty(t, batch)
}

func TestAdapterFor_UnknownType(t *testing.T) {
	r := testRunner(t)
	_, err := r.adapterFor(config.SiteConfig{Name: "odd", Type: "mystery"})
	assert.Error(t, err)
}

func TestAdapterFor_ClosedDispatch(t *testing.T) {
	r := testRunner(t)
	for _, siteType := range []config.SiteType{
		config.SiteAmazon, config.SitePGCareers, config.SiteLinkedIn, config.SiteGeneric,
	} {
		adapter, err := r.adapterFor(config.SiteConfig{Name: "n", Type: siteType, URL: "https://x.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, adapter.Name())
	}
}
