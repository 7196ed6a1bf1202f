// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"regexp"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// refPattern matches $NAME and ${NAME} variable references.
var refPattern = regexp.MustCompile(`\$(?:([A-Za-z_][A-Za-z0-9_]*)|\{([A-Za-z_][A-Za-z0-9_]*)\})`)

// Expand replaces every $NAME or ${NAME} occurrence in text with the
// corresponding value from env. References to names that are not present in
// env are left as-is, so callers can detect them with HasUnresolved and
// prompt the user to fill in the env file.
func Expand(text string, env Env) string {
	return refPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := refPattern.FindStringSubmatch(match)
		key := name[1]
		if key == "" {
			key = name[2]
		}
		if value, ok := env[key]; ok {
			return value
		}
		return match
	})
}

// HasUnresolved reports whether text still contains $NAME/${NAME} references
// after expansion against env.
func HasUnresolved(text string, env Env) bool {
	return refPattern.MatchString(Expand(text, env))
}

// UnresolvedNames returns the sorted, de-duplicated variable names that text
// still references after expansion against env.
func UnresolvedNames(text string, env Env) []string {
	seen := map[string]struct{}{}
	for _, match := range refPattern.FindAllStringSubmatch(Expand(text, env), -1) {
		key := match[1]
		if key == "" {
			key = match[2]
		}
		seen[key] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}
