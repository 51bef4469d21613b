package filter

import (
	"regexp"
	"strconv"
	"strings"
)

// maxSaneYears rejects numbers that can't be a real experience ask.
const maxSaneYears = 40

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	//"3-5 years of experience", "2 to 4 yrs exp"
	rangeRe = regexp.MustCompile(`(\d{1,2})\s*(?:to|–|-)\s*(\d{1,2})\s*\+?\s*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp)\b`)
	//"minimum of 5+ years experience", "at least 3 years exp", "4+ yrs exp"
	singleRe = regexp.MustCompile(`(?:minimum\s+(?:of\s+)?|at\s+least\s+|over\s+|more\s+than\s+)?(\d{1,2})\s*\+?\s*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp)\b`)
	//"experience of 3 years"
	inverseRe = regexp.MustCompile(`(?:experience|exp)\s+of\s+(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)
)

// ExtractYears pulls the required years of experience out of free text.
// A range returns its minimum bound; an unparseable or absent mention
// returns "" (unknown, deliberately distinct from "0").
func ExtractYears(text string) string {
	normalized := whitespaceRe.ReplaceAllString(strings.ToLower(text), " ")

	//ranges win over single-value forms
	if m := rangeRe.FindStringSubmatch(normalized); m != nil {
		low, err1 := strconv.Atoi(m[1])
		high, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			if high < low {
				low = high
			}
			if low > 0 && low <= maxSaneYears {
				return strconv.Itoa(low)
			}
		}
	}

	//first qualifying single-value match in scan order
	type hit struct{ pos, value int }
	var hits []hit
	for _, re := range []*regexp.Regexp{singleRe, inverseRe} {
		for _, m := range re.FindAllStringSubmatchIndex(normalized, -1) {
			v, err := strconv.Atoi(normalized[m[2]:m[3]])
			if err != nil {
				continue
			}
			hits = append(hits, hit{pos: m[0], value: v})
		}
	}
	bestPos, bestVal := -1, 0
	for _, h := range hits {
		if h.value <= 0 || h.value > maxSaneYears {
			continue
		}
		if bestPos == -1 || h.pos < bestPos {
			bestPos, bestVal = h.pos, h.value
		}
	}
	if bestPos == -1 {
		return ""
	}
	return strconv.Itoa(bestVal)
}
