package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// SaveLinkedInState performs an interactive LinkedIn login and writes
// the playwright storage state to outputPath. Run once; the saved file
// is then referenced by the LinkedIn site config for authenticated
// scraping.
func SaveLinkedInState(user, pass, outputPath string) error {
	if user == "" || pass == "" {
		return fmt.Errorf("LINKEDIN_USER and LINKEDIN_PASS must be set")
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	defer pw.Stop()

	//headful so a verification challenge can be completed by hand
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
	})
	if err != nil {
		return fmt.Errorf("launch chromium: %w", err)
	}
	defer browser.Close()

	ctx, err := browser.NewContext()
	if err != nil {
		return fmt.Errorf("create browser context: %w", err)
	}
	defer ctx.Close()

	page, err := ctx.NewPage()
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}

	if _, err := page.Goto("https://www.linkedin.com/login", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}

	if err := page.Fill(`input[name="session_key"]`, user); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := page.Fill(`input[name="session_password"]`, pass); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := page.Click(`button[type="submit"]`); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(15000),
	}); err != nil {
		return fmt.Errorf("wait for login to settle: %w", err)
	}

	if _, err := ctx.StorageState(outputPath); err != nil {
		return fmt.Errorf("save storage state: %w", err)
	}
	return nil
}
