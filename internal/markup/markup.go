// Package markup turns stored post content and table notes into HTML that is
// safe to embed in public pages.
package markup

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// A line consisting only of **text** is a section heading in post content.
	headingLine = regexp.MustCompile(`^\*\*(.+)\*\*$`)

	engine = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	policy = bluemonday.UGCPolicy()
)

// RenderPost converts blog content to sanitised HTML. Content follows the
// editor conventions: a line wrapped in ** is a heading, lines starting with
// "- " are list items, blank lines separate paragraphs. Any other Markdown
// (ordered lists, # headings, emphasis) renders as Markdown. Raw HTML is dropped.
func RenderPost(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(normalizePost(content)), &buf); err != nil {
		return "", fmt.Errorf("render post: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// Sanitize cleans an admin-authored HTML fragment such as a table's
// additionalInfo.
func Sanitize(fragment string) template.HTML {
	return template.HTML(policy.Sanitize(fragment))
}

func normalizePost(content string) string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines)+8)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := headingLine.FindStringSubmatch(trimmed); m != nil && !strings.Contains(m[1], "**") {
			if i > 0 {
				out = append(out, "")
			}
			out = append(out, "## "+strings.TrimSpace(m[1]), "")
			continue
		}
		// A list needs a blank line before it when it follows a paragraph.
		if strings.HasPrefix(trimmed, "- ") && len(out) > 0 {
			prev := strings.TrimSpace(out[len(out)-1])
			if prev != "" && !strings.HasPrefix(prev, "- ") {
				out = append(out, "")
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
