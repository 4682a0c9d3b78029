package lints

import (
	"strings"

	tt "github.com/gnolang/linelint/internal/types"
)

const (
	TrailingWhitespaceRuleName = "trailing-whitespace"
	trailingWhitespaceMessage  = "Trailing whitespace found"
)

const blanks = " \t"

// DetectTrailingWhitespace reports one issue per line that ends with spaces
// or tabs before its line break (or before the end of the file).
func DetectTrailingWhitespace(filename, content string) []tt.Issue {
	var issues []tt.Issue
	for i, l := range splitLines(content) {
		if hasTrailingBlank(l.body) {
			issues = append(issues, tt.Issue{
				Rule:     TrailingWhitespaceRuleName,
				Filename: filename,
				Message:  trailingWhitespaceMessage,
				Line:     i + 1,
			})
		}
	}
	return issues
}

// FixTrailingWhitespace strips trailing spaces and tabs from every line,
// keeping each line's original break. Stripping never creates a new break.
func FixTrailingWhitespace(content string) string {
	lines := splitLines(content)

	changed := false
	for _, l := range lines {
		if hasTrailingBlank(l.body) {
			changed = true
			break
		}
	}
	if !changed {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	for _, l := range lines {
		b.WriteString(trimBody(l))
		b.WriteString(l.brk)
	}
	return b.String()
}

// trimBody strips the trailing blanks of a line. A "\r" uncovered by the
// trim in front of "\n" or the end of the file would become a line break of
// its own, so it is stripped along with the blanks.
func trimBody(l line) string {
	body := strings.TrimRight(l.body, blanks)
	if len(body) < len(l.body) && (l.brk == "\n" || l.brk == "") {
		body = strings.TrimRight(body, blanks+"\r")
	}
	return body
}

func hasTrailingBlank(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == ' ' || last == '\t'
}
