// Harvests career-site URLs out of a PDF (e.g. a company shortlist
// document) and turns them into generic site configs.

package pdfsites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"jobharvest/internal/config"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var urlRe = regexp.MustCompile(`https?://[^\s<>"')\]}]+`)

// ExtractURLs pulls every URL-shaped substring out of a PDF's text,
// deduplicated preserving first appearance.
func ExtractURLs(pdfPath string) ([]string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	var text strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		text.WriteString(textFromStream(data))
		text.WriteByte('\n')
	}

	return URLsFromText(text.String()), nil
}

// URLsFromText scans free text for URLs, order-preserving dedupe.
func URLsFromText(text string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var urls []string
	for _, match := range urlRe.FindAllString(text, -1) {
		url := strings.TrimRight(match, ".,;")
		if seen.Add(url) {
			urls = append(urls, url)
		}
	}
	return urls
}

// ExportSites writes the URLs found in pdfPath as a JSON sites file of
// generic site configs, and returns how many were exported.
func ExportSites(pdfPath, outputPath string) (int, error) {
	urls, err := ExtractURLs(pdfPath)
	if err != nil {
		return 0, err
	}
	if len(urls) == 0 {
		return 0, nil
	}

	sites := make([]config.SiteConfig, 0, len(urls))
	for _, url := range urls {
		sites = append(sites, config.SiteConfig{
			Name:    nameFromURL(url),
			Type:    config.SiteGeneric,
			URL:     url,
			Enabled: true,
		})
	}

	data, err := json.MarshalIndent(sites, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal sites: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return 0, fmt.Errorf("write %s: %w", outputPath, err)
	}
	return len(sites), nil
}

func nameFromURL(url string) string {
	name := strings.TrimPrefix(url, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.TrimPrefix(name, "www.")
	if idx := strings.IndexAny(name, "/?"); idx != -1 {
		name = name[:idx]
	}
	return name
}

var pdfStringRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// textFromStream pulls string literals out of PDF text-show operators
// (Tj, TJ, '). Enough fidelity for URL scanning; no layout recovery.
func textFromStream(data []byte) string {
	var sb strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		isTextOp := bytes.HasSuffix(line, []byte("Tj")) ||
			bytes.HasSuffix(line, []byte("TJ")) ||
			(bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")))
		if !isTextOp {
			continue
		}
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			sb.Write(decodePDFString(m[1]))
		}
		sb.WriteByte(' ')
	}
	return sb.String()
}

// decodePDFString resolves backslash escapes in a PDF string literal.
func decodePDFString(raw []byte) []byte {
	var out []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			out = append(out, raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		default:
			out = append(out, raw[i])
		}
	}
	return out
}
