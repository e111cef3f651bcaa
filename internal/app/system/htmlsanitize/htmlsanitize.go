// Package htmlsanitize cleans the inline markup allowed in layout labels.
// It uses bluemonday to strip everything except a small set of phrasing elements.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy is the shared bluemonday policy for label markup.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.NewPolicy()

		// Phrasing content only: labels sit inside table cells and headings.
		policy.AllowElements("b", "strong", "i", "em", "u", "s", "sub", "sup", "small", "mark", "code", "br")
		policy.AllowElements("span")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span")

		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("title").Globally()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return policy
}

// Sanitize removes every element and attribute not allowed in labels.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}

// Label returns s ready for a template: plain text is escaped, markup is sanitized.
func Label(s string) template.HTML {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(Sanitize(s))
}
