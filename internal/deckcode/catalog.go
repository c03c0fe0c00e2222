package deckcode

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// catalog holds one id → value map from the page's script assignments.
type catalog map[string]string

// assignPattern matches VAR[id]='value' and VAR["id"] = "value", with quotes
// of either kind and backslash escapes inside the value.
func assignPattern(variable string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(variable) +
		`\s*\[\s*['"]?(\d+)['"]?\s*\]\s*=\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")`)
}

var jsUnescaper = strings.NewReplacer(`\\`, `\`, `\'`, `'`, `\"`, `"`, `\/`, `/`)

// scanCatalog collects every assignment in the page. A later assignment to
// the same id overwrites an earlier one.
func scanCatalog(re *regexp.Regexp, page string) catalog {
	out := make(catalog)
	if re == nil {
		return out
	}
	for _, m := range re.FindAllStringSubmatch(page, -1) {
		raw := m[2]
		if raw == "" {
			raw = m[3]
		}
		out[m[1]] = cleanValue(raw)
	}
	return out
}

// cleanValue undoes script and entity escaping and puts the text in NFC so
// names typed with combining marks compare equal to precomposed ones.
func cleanValue(raw string) string {
	v := html.UnescapeString(jsUnescaper.Replace(raw))
	return norm.NFC.String(strings.TrimSpace(v))
}
