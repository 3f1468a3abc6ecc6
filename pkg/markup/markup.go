// Package markup cleans the small amount of inline HTML allowed in field
// labels: informational links and icon spans.
package markup

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeLabel keeps anchors (href, target) and spans (class) and drops
// everything else. Links are forced to carry rel="noreferrer".
func SanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(labelSanitizer().Sanitize(trimmed))
}

// PlainText strips all markup and collapses whitespace, for contexts such as
// terminals, logs and aria labels.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	stripped := html.UnescapeString(textSanitizer().Sanitize(trimmed))
	return strings.Join(strings.Fields(stripped), " ")
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowStandardURLs()
		policy.AllowAttrs("href", "target").OnElements("a")
		policy.AllowAttrs("class").OnElements("span")
		policy.RequireNoFollowOnLinks(false)
		policy.AddTargetBlankToFullyQualifiedLinks(false)
		policy.RequireNoReferrerOnLinks(true)
		policy.AllowElements("span")
		labelPolicy = policy
	})
	return labelPolicy
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
