// Package htmlsanitize sanitizes user-supplied rich text before it is
// stored or rendered. Message bodies and case summaries pass through
// here; everything else in templates is auto-escaped.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows basic formatting, lists, tables, links, and images.
// Scripts, iframes, forms, and event-handler attributes are stripped.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Table support beyond what UGC allows by default.
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "td", "th")
	p.AllowAttrs("style").OnElements("table", "tr", "td", "th")

	// Inline formatting used by the message composer.
	p.AllowElements("u", "s", "sub", "sup", "mark")

	// RTL/LTR control for mixed Arabic and Latin text.
	p.AllowAttrs("dir").Globally()

	return p
}

// Sanitize removes unsafe HTML and returns the cleaned string.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}

// SanitizeToHTML sanitizes and returns template.HTML, marking the
// result safe to render without re-escaping.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(policy.Sanitize(html))
}

// IsPlainText reports whether s contains no HTML tags. A string needs
// both < and > to be considered markup, so "5 < 10" stays plain.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}

// PlainTextToHTML escapes a plain-text string and converts newlines to
// <br>, wrapping the result in a paragraph.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay converts stored text to safe HTML: plain text is
// escaped and paragraph-wrapped, anything with markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
