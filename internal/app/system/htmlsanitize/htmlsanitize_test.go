package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/mizanlegal/mizan/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("مرحبا بكم"); got != "مرحبا بكم" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Click</button>`
	if got := htmlsanitize.Sanitize(input); got == input {
		t.Error("expected onclick attribute to be removed")
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(input); got == input {
		t.Error("expected javascript: href to be removed")
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	input := `<a href="https://example.com">Link</a>`
	got := htmlsanitize.Sanitize(input)
	// bluemonday adds rel="nofollow", so just check the href survived
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestSanitize_AllowsTables(t *testing.T) {
	input := `<table><thead><tr><th>Header</th></tr></thead><tbody><tr><td>Cell</td></tr></tbody></table>`
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected table preserved, got %q", got)
	}
}

func TestSanitize_AllowsTableAttributes(t *testing.T) {
	input := `<table><tr><td colspan="2" rowspan="2">Cell</td></tr></table>`
	got := htmlsanitize.Sanitize(input)
	if !strings.Contains(got, `colspan="2"`) || !strings.Contains(got, `rowspan="2"`) {
		t.Errorf("expected colspan/rowspan preserved, got %q", got)
	}
}

func TestSanitize_AllowsDirAttribute(t *testing.T) {
	input := `<p dir="rtl">نص عربي</p>`
	got := htmlsanitize.Sanitize(input)
	if !strings.Contains(got, `dir="rtl"`) {
		t.Errorf("expected dir attribute preserved, got %q", got)
	}
}

func TestSanitize_AllowsTextFormatting(t *testing.T) {
	input := "<u>underline</u> <s>strikethrough</s> <sub>sub</sub> <sup>sup</sup> <mark>mark</mark>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected text formatting preserved, got %q", got)
	}
}

func TestSanitize_AllowsLists(t *testing.T) {
	input := "<ul><li>Item 1</li><li>Item 2</li></ul>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected list preserved, got %q", got)
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	input := `<p>Content</p><iframe src="https://evil.com"></iframe>`
	got := htmlsanitize.Sanitize(input)
	if strings.Contains(got, "iframe") {
		t.Error("expected iframe to be removed")
	}
	if !strings.Contains(got, "Content") {
		t.Error("expected safe content to be preserved")
	}
}

func TestSanitize_RemovesFormElements(t *testing.T) {
	input := `<form action="/submit"><input type="text" name="data"><button>Submit</button></form>`
	got := htmlsanitize.Sanitize(input)
	if strings.Contains(got, "<form") || strings.Contains(got, "<input") {
		t.Error("expected form elements to be removed")
	}
}

func TestSanitize_RemovesOnError(t *testing.T) {
	input := `<img src="x" onerror="alert('xss')">`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "onerror") {
		t.Error("expected onerror attribute to be removed")
	}
}

func TestSanitizeToHTML_RemovesDangerousContent(t *testing.T) {
	got := htmlsanitize.SanitizeToHTML("<p>Hello</p><script>alert('xss')</script>")
	if string(got) != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"<p>Hello</p>", false},
		{"5 < 10", true},
		{"5 > 3", true},
	}

	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.input); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"simple", "Hello, World!", "<p>Hello, World!</p>"},
		{"newlines", "Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
		{"ampersand", "A & B", "<p>A &amp; B</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PlainTextToHTML(tt.input); got != tt.want {
				t.Errorf("PlainTextToHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainTextToHTML_HTMLEscaped(t *testing.T) {
	got := htmlsanitize.PlainTextToHTML("<script>alert('xss')</script>")
	if strings.Contains(got, "<script>") {
		t.Error("expected HTML to be escaped")
	}
	if !strings.Contains(got, "&lt;") || !strings.Contains(got, "&gt;") {
		t.Error("expected < and > to be escaped")
	}
}

func TestPrepareForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  template.HTML
	}{
		{"empty", "", ""},
		{"plain text", "Hello, World!", "<p>Hello, World!</p>"},
		{"html", "<p>Hello</p>", "<p>Hello</p>"},
		{"html with script", "<p>Hello</p><script>alert('xss')</script>", "<p>Hello</p>"},
		{"plain with newlines", "Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PrepareForDisplay(tt.input); got != tt.want {
				t.Errorf("PrepareForDisplay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
