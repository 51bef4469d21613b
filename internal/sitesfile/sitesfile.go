// Loads additional crawl targets from an external sites file. Tabular
// formats (csv/xlsx) are matched by header aliases; structured formats
// (json/yaml) decode straight into SiteConfig.

package sitesfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobharvest/internal/config"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// header aliases, all matched case-insensitively
var (
	nameAliases = []string{"name", "company", "company_name", "site"}
	urlAliases  = []string{"url", "link", "website", "careers_url", "career_url"}
	typeAliases = []string{"type", "site_type"}
	enabAliases = []string{"enabled", "active"}
)

// Load parses a sites file by extension. Unsupported formats or a
// missing URL column produce zero sites and a warning, never an error
// that stops the run.
func Load(path string, log *zap.SugaredLogger) []config.SiteConfig {
	var (
		sites []config.SiteConfig
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		sites, err = loadCSV(path)
	case ".xlsx":
		sites, err = loadXLSX(path)
	case ".json":
		sites, err = loadJSON(path)
	case ".yaml", ".yml":
		sites, err = loadYAML(path)
	default:
		log.Warnf("⚠️ Unsupported sites file format: %s", path)
		return nil
	}
	if err != nil {
		log.Warnf("⚠️ Could not load sites from %s: %v", path, err)
		return nil
	}
	log.Infof("Loaded %d additional sites from %s", len(sites), path)
	return sites
}

func loadCSV(path string) ([]config.SiteConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return sitesFromRows(records)
}

func loadXLSX(path string) ([]config.SiteConfig, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	return sitesFromRows(rows)
}

// rawSite keeps Enabled a pointer so an absent field defaults to true.
type rawSite struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Type    string `json:"type" yaml:"type"`
	Enabled *bool  `json:"enabled" yaml:"enabled"`
}

func loadJSON(path string) ([]config.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []rawSite
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return normalizeSites(fromRawSites(raw)), nil
}

func loadYAML(path string) ([]config.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []rawSite
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return normalizeSites(fromRawSites(raw)), nil
}

func fromRawSites(raw []rawSite) []config.SiteConfig {
	sites := make([]config.SiteConfig, 0, len(raw))
	for _, r := range raw {
		enabled := true
		if r.Enabled != nil {
			enabled = *r.Enabled
		}
		sites = append(sites, config.SiteConfig{
			Name:    r.Name,
			URL:     r.URL,
			Type:    config.SiteType(strings.ToLower(r.Type)),
			Enabled: enabled,
		})
	}
	return sites
}

// sitesFromRows maps a header row plus data rows into site configs.
func sitesFromRows(rows [][]string) ([]config.SiteConfig, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	header := rows[0]
	nameIdx := findColumn(header, nameAliases)
	urlIdx := findColumn(header, urlAliases)
	typeIdx := findColumn(header, typeAliases)
	enabIdx := findColumn(header, enabAliases)

	if urlIdx == -1 {
		return nil, fmt.Errorf("no URL column found (tried %v)", urlAliases)
	}

	var sites []config.SiteConfig
	for _, row := range rows[1:] {
		url := cell(row, urlIdx)
		if url == "" {
			continue
		}
		site := config.SiteConfig{
			Name:    cell(row, nameIdx),
			URL:     url,
			Type:    config.SiteType(strings.ToLower(cell(row, typeIdx))),
			Enabled: parseEnabled(cell(row, enabIdx)),
		}
		sites = append(sites, site)
	}
	return normalizeSites(sites), nil
}

// normalizeSites fills in defaults: unnamed sites take their URL host,
// unknown types become generic.
func normalizeSites(sites []config.SiteConfig) []config.SiteConfig {
	out := make([]config.SiteConfig, 0, len(sites))
	for _, site := range sites {
		if strings.TrimSpace(site.URL) == "" {
			continue
		}
		site.URL = strings.TrimSpace(site.URL)
		if !config.KnownSiteType(site.Type) {
			site.Type = config.SiteGeneric
		}
		if strings.TrimSpace(site.Name) == "" {
			site.Name = siteNameFromURL(site.URL)
		}
		out = append(out, site)
	}
	return out
}

func siteNameFromURL(url string) string {
	name := url
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.TrimPrefix(name, "www.")
	if idx := strings.IndexAny(name, "/?"); idx != -1 {
		name = name[:idx]
	}
	return name
}

func findColumn(header []string, aliases []string) int {
	for i, col := range header {
		lowered := strings.ToLower(strings.TrimSpace(col))
		for _, alias := range aliases {
			if lowered == alias {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseEnabled(value string) bool {
	switch strings.ToLower(value) {
	case "false", "0", "no", "n":
		return false
	}
	//absent means enabled
	return true
}
