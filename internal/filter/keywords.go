package filter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vocabulary is the fixed set of technology and skill terms matched
// against job text. Matching is case-insensitive whole-word; display
// form is derived in canonicalTerm.
var vocabulary = []string{
	//languages
	"python", "java", "javascript", "typescript", "golang", "go",
	"rust", "ruby", "php", "scala", "kotlin", "swift",
	//frameworks
	"react", "angular", "vue", "django", "flask", "spring",
	"node", "express", "fastapi", "rails",
	//databases
	"sql", "mysql", "postgresql", "postgres", "mongodb", "redis",
	"cassandra", "elasticsearch", "oracle", "dynamodb",
	//cloud and devops
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"jenkins", "ansible", "git", "linux", "devops", "microservices",
	"kafka", "rabbitmq", "grpc", "graphql", "rest",
	//data and ML
	"spark", "hadoop", "airflow", "pandas", "numpy", "tensorflow",
	"pytorch", "tableau", "machine learning", "deep learning",
	"data science", "nlp", "etl",
	//process
	"agile", "scrum", "jira", "kanban",
}

var (
	termPatterns = buildTermPatterns()
	titleCaser   = cases.Title(language.English)
)

func buildTermPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(vocabulary))
	for _, term := range vocabulary {
		patterns[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return patterns
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(whitespaceRe.ReplaceAllString(result, " "))
}

// canonicalTerm renders a vocabulary hit in display form: short terms
// uppercased (SQL, AWS), longer ones title-cased (Python).
func canonicalTerm(term string) string {
	if len(term) <= 4 {
		return strings.ToUpper(term)
	}
	return titleCaser.String(term)
}

// ExtractKeywords scans title + text for vocabulary terms and returns
// their canonical forms ordered by first appearance, deduplicated,
// capped at maxKeywords entries.
func ExtractKeywords(text, title string, maxKeywords int) []string {
	combined := normalizeText(title + " " + text)

	type hit struct {
		pos       int
		canonical string
	}
	var hits []hit
	for _, term := range vocabulary {
		loc := termPatterns[term].FindStringIndex(combined)
		if loc == nil {
			continue
		}
		hits = append(hits, hit{pos: loc[0], canonical: canonicalTerm(term)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool, len(hits))
	var keywords []string
	for _, h := range hits {
		if seen[h.canonical] {
			continue
		}
		seen[h.canonical] = true
		keywords = append(keywords, h.canonical)
		if len(keywords) >= maxKeywords {
			break
		}
	}
	return keywords
}
