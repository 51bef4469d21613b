// Canonical job record shared by all site adapters.
// Ensure consistency

package scraper

import "strings"

// MaxKeywords caps the keyword list carried on a record.
const MaxKeywords = 15

type Job struct {
	ID                  string
	Link                string
	Title               string
	Company             string
	Location            string
	Posted              string
	MinimumRequirements string
	GoodToHave          string
	Description         string
	//YearsOfExperience is a small integer rendered as a string; ""
	//means unknown, which is distinct from "0".
	YearsOfExperience string
	Keywords          []string
	Source            string
}

// Columns is the fixed persisted-table schema, in column order.
// Unknown extra columns in an existing table are tolerated and kept
// after these.
var Columns = []string{
	"Job ID",
	"Job Link",
	"Title",
	"Company",
	"Location",
	"Posted",
	"Minimum Requirements",
	"Good to Have",
	"Job Description",
	"Years of Experience",
	"Keywords",
	"Source",
}

// ToRow flattens a record into schema-keyed cells.
func (j Job) ToRow() map[string]string {
	return map[string]string{
		"Job ID":               j.ID,
		"Job Link":             j.Link,
		"Title":                j.Title,
		"Company":              j.Company,
		"Location":             j.Location,
		"Posted":               j.Posted,
		"Minimum Requirements": j.MinimumRequirements,
		"Good to Have":         j.GoodToHave,
		"Job Description":      j.Description,
		"Years of Experience":  j.YearsOfExperience,
		"Keywords":             strings.Join(j.Keywords, ", "),
		"Source":               j.Source,
	}
}
