package lints

import "strings"

// line is a single line of text split from its line break.
type line struct {
	body string
	brk  string
}

// splitLines splits content into lines, keeping each line's break.
// Recognised breaks are "\r\n", "\n", and a lone "\r" at the very end of
// the content. A "\r" anywhere else belongs to the line body.
// The final line is omitted when content ends with a break.
func splitLines(content string) []line {
	var lines []line
	for len(content) > 0 {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			if strings.HasSuffix(content, "\r") {
				lines = append(lines, line{body: content[:len(content)-1], brk: "\r"})
			} else {
				lines = append(lines, line{body: content})
			}
			break
		}

		body, brk := content[:idx], "\n"
		if strings.HasSuffix(body, "\r") {
			body, brk = body[:len(body)-1], "\r\n"
		}
		lines = append(lines, line{body: body, brk: brk})
		content = content[idx+1:]
	}
	return lines
}

// countLines returns the number of lines in content. A trailing line break
// terminates the last line rather than starting a new one.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
