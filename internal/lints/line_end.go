package lints

import (
	"strings"

	tt "github.com/gnolang/linelint/internal/types"
)

const (
	LineEndRuleName = "line-end"
	lineEndMessage  = "File does not end with the expected line ending"
)

// DetectMissingLineEnd reports a single issue when content does not end with
// the given line ending. The issue's line is the number of lines in content,
// so it points at the last line, or at line 0 for an empty file.
func DetectMissingLineEnd(filename, content, ending string) []tt.Issue {
	if strings.HasSuffix(content, ending) {
		return nil
	}

	return []tt.Issue{{
		Rule:     LineEndRuleName,
		Filename: filename,
		Message:  lineEndMessage,
		Line:     countLines(content),
	}}
}

// FixLineEnd makes content end with the given line ending.
//
// A final break written in the other style is replaced instead of being
// followed by a second one, so "a\n" becomes "a\r\n" rather than "a\n\r\n".
func FixLineEnd(content, ending string) string {
	if strings.HasSuffix(content, ending) {
		return content
	}

	// content ending in "\r\n" already satisfies either ending, so only a
	// single dangling byte can be left over here
	if strings.HasSuffix(content, "\n") || strings.HasSuffix(content, "\r") {
		content = content[:len(content)-1]
	}

	return content + ending
}
