// Shared extraction helpers for the site adapters: selector-cascade
// text lookup, link collection, slug-derived titles.

package scraper

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"
)

// SafeText returns the trimmed inner text of the first element matching
// selector, or "" when the selector is absent or errors. A failing
// field degrades to empty, never aborts the candidate.
func SafeText(page playwright.Page, selector string) string {
	el, err := page.QuerySelector(selector)
	if err != nil || el == nil {
		return ""
	}
	text, err := el.InnerText()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// FirstText tries each selector in order and returns the first
// non-empty hit.
func FirstText(page playwright.Page, selectors ...string) string {
	for _, sel := range selectors {
		if text := SafeText(page, sel); text != "" {
			return text
		}
	}
	return ""
}

// BodyText returns up to limit characters of the page body text.
func BodyText(page playwright.Page, limit int) string {
	text := SafeText(page, "body")
	return Truncate(text, limit)
}

// Truncate bounds s to at most limit runes.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// CollectLinks gathers href attributes from all elements matching
// selector, deduplicated preserving first-seen order.
func CollectLinks(page playwright.Page, selector string) []string {
	elements, err := page.QuerySelectorAll(selector)
	if err != nil {
		return nil
	}
	seen := mapset.NewThreadUnsafeSet[string]()
	var links []string
	for _, el := range elements {
		href, err := el.GetAttribute("href")
		if err != nil || href == "" {
			continue
		}
		if seen.Add(href) {
			links = append(links, href)
		}
	}
	return links
}

// AbsoluteLink prefixes relative links with the site base.
func AbsoluteLink(base, link string) string {
	if strings.HasPrefix(link, "http") {
		return link
	}
	return strings.TrimSuffix(base, "/") + link
}

// TitleFromSlug derives a last-resort title from the final URL path
// segment: "senior-data-engineer-123" -> "Senior Data Engineer 123".
func TitleFromSlug(link string) string {
	trimmed := strings.TrimSuffix(link, "/")
	if idx := strings.IndexAny(trimmed, "?#"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	slug := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx != -1 {
		slug = trimmed[idx+1:]
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
