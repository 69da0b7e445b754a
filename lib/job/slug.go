package jobhandler

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile("[^a-z0-9]+")

// PublicLink derives the public slug for a job: lower-cased title with every
// run of non [a-z0-9] characters collapsed to a single hyphen, edge hyphens
// trimmed, suffixed with the last 6 characters of the job id so duplicate
// titles stay unique. Assigned once, on first publish.
func PublicLink(title, id string) string {
	slug := strings.ToLower(title)
	slug = nonSlugRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	suffix := id
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
