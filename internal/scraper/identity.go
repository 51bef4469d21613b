package scraper

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ComputeID derives the stable job identity from the canonical link.
// Same link always hashes to the same id, across runs.
func ComputeID(link string) string {
	sum := sha1.Sum([]byte(link))
	return hex.EncodeToString(sum[:])
}

// IsValid reports whether a record carries the minimum required fields.
// Invalid records are dropped before merge, not surfaced as errors.
func IsValid(j Job) bool {
	return strings.TrimSpace(j.ID) != "" &&
		strings.TrimSpace(j.Link) != "" &&
		strings.TrimSpace(j.Title) != ""
}
