package utils

import "github.com/goliatone/go-slug"

// Slugify normalizes s with the default slug rules: lowercase, spaces and
// underscores become hyphens, other punctuation is dropped and hyphen runs
// collapse. It returns "" when nothing is left.
func Slugify(s string) string {
	out, err := slug.Normalize(s)
	if err != nil {
		return ""
	}
	return out
}
