package browser

import (
	"errors"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// navigationTimeoutMs bounds a single page load; exceeding it abandons
// that wait strategy, not the whole run.
const navigationTimeoutMs = 20000

// ErrNavigationFailed is returned once every wait strategy for a page
// load has been exhausted.
var ErrNavigationFailed = errors.New("navigation failed")

// Manager owns the playwright engine and one launched browser. One
// manager exists per site scrape; Close releases both handles.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewManager(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &Manager{pw: pw, browser: browser}, nil
}

// NewSession opens a browser context plus page. When storageStatePath
// names an existing file it seeds the context with that saved session;
// otherwise the session is unauthenticated.
func (m *Manager) NewSession(storageStatePath string) (*Session, error) {
	opts := playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(defaultUserAgent),
	}
	if storageStatePath != "" {
		if _, err := os.Stat(storageStatePath); err == nil {
			opts.StorageStatePath = playwright.String(storageStatePath)
		}
	}

	ctx, err := m.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &Session{Context: ctx, Page: page}, nil
}

func (m *Manager) Close() {
	if m.browser != nil {
		m.browser.Close()
	}
	if m.pw != nil {
		m.pw.Stop()
	}
}

// Session bundles one browser context and its page. Close tears both
// down; the owning Manager is closed separately.
type Session struct {
	Context playwright.BrowserContext
	Page    playwright.Page
}

func (s *Session) Close() {
	if s.Page != nil {
		s.Page.Close()
	}
	if s.Context != nil {
		s.Context.Close()
	}
}

// Navigate loads url attempting the stricter wait strategy first, then
// falling back to DOM-ready. Both failing yields ErrNavigationFailed.
func Navigate(page playwright.Page, url string) error {
	waitModes := []*playwright.WaitUntilState{
		playwright.WaitUntilStateNetworkidle,
		playwright.WaitUntilStateDomcontentloaded,
	}

	var errs []error
	for _, mode := range waitModes {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: mode,
			Timeout:   playwright.Float(navigationTimeoutMs),
		})
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("%w for %s: %v", ErrNavigationFailed, url, errs)
}
