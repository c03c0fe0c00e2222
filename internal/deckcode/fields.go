package deckcode

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// scanFields walks the page's tags and returns the value attribute of every
// element whose id or name is one of the wanted fields. The first element
// found for a field wins.
func scanFields(page string, want map[string]bool) map[string]string {
	found := make(map[string]string, len(want))
	z := html.NewTokenizer(strings.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return found
		case html.StartTagToken, html.SelfClosingTagToken:
			_, more := z.TagName()
			var field, value string
			hasValue := false
			for more {
				var k, v []byte
				k, v, more = z.TagAttr()
				switch string(k) {
				case "id", "name":
					if field == "" && want[string(v)] {
						field = string(v)
					}
				case "value":
					value, hasValue = string(v), true
				}
			}
			if field == "" || !hasValue {
				continue
			}
			if _, dup := found[field]; !dup {
				found[field] = value
			}
		}
	}
}

// fieldFallback finds a field written as markup inside script text, where
// the tokenizer only sees raw text.
type fieldFallback struct {
	idFirst    *regexp.Regexp
	valueFirst *regexp.Regexp
}

func newFieldFallback(field string) fieldFallback {
	id := `(?:id|name)\s*=\s*["']` + regexp.QuoteMeta(field) + `["']`
	val := `\bvalue\s*=\s*["']([^"']*)["']`
	return fieldFallback{
		idFirst:    regexp.MustCompile(id + `[^<>]*?` + val),
		valueFirst: regexp.MustCompile(val + `[^<>]*?` + id),
	}
}

func (f fieldFallback) find(page string) (string, bool) {
	if m := f.idFirst.FindStringSubmatch(page); m != nil {
		return html.UnescapeString(m[1]), true
	}
	if m := f.valueFirst.FindStringSubmatch(page); m != nil {
		return html.UnescapeString(m[1]), true
	}
	return "", false
}
