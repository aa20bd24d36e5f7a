// Package sanitize turns user-provided rich text into plain text suitable
// for WhatsApp messages.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	// lineBreakRegex matches tags that end a visual line
	lineBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>|</p\s*>|</div\s*>|</li\s*>`)
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// blankLinesRegex matches runs of more than one empty line
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

// StripHTML removes all HTML tags, keeping line structure for block tags.
func StripHTML(s string) string {
	result := lineBreakRegex.ReplaceAllString(s, "\n")
	result = htmlTagRegex.ReplaceAllString(result, "")
	result = html.UnescapeString(result)
	// Re-strip after entity decode to catch encoded tags
	return htmlTagRegex.ReplaceAllString(result, "")
}

// Message prepares text for delivery: HTML is stripped, line endings are
// normalized to \n, trailing spaces are removed from every line and at most
// one blank line is kept between paragraphs.
func Message(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = StripHTML(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	s = blankLinesRegex.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(s)
}
