package lints

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/linelint/internal/types"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		expected []line
	}{
		{"empty", "", nil},
		{"single without break", "abc", []line{{"abc", ""}}},
		{"single with lf", "abc\n", []line{{"abc", "\n"}}},
		{"mixed breaks", "a\r\nb\nc", []line{{"a", "\r\n"}, {"b", "\n"}, {"c", ""}}},
		{"blank lines", "\n\n", []line{{"", "\n"}, {"", "\n"}}},
		{"lone cr at eof", "a\r", []line{{"a", "\r"}}},
		{"cr inside body", "a\rb\n", []line{{"a\rb", "\n"}}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, splitLines(tc.content))
		})
	}
}

func TestCountLines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("hello"))
	assert.Equal(t, 1, countLines("hello\n"))
	assert.Equal(t, 2, countLines("a\r\nb"))
	assert.Equal(t, 2, countLines("a\r\nb\r\n"))
	assert.Equal(t, 3, countLines("\n\n\n"))
}

func TestDetectMissingLineEnd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		ending   string
		expected []tt.Issue
	}{
		{
			name:    "proper unix ending",
			content: "This is a test file.\n",
			ending:  tt.UnixEnding,
		},
		{
			name:    "missing unix ending",
			content: "hello",
			ending:  tt.UnixEnding,
			expected: []tt.Issue{
				{Rule: LineEndRuleName, Filename: "test.txt", Message: lineEndMessage, Line: 1},
			},
		},
		{
			name:    "crlf satisfies unix",
			content: "a\r\nb\r\n",
			ending:  tt.UnixEnding,
		},
		{
			name:    "lf does not satisfy windows",
			content: "a\r\nb\r\nc\n",
			ending:  tt.WindowsEnding,
			expected: []tt.Issue{
				{Rule: LineEndRuleName, Filename: "test.txt", Message: lineEndMessage, Line: 3},
			},
		},
		{
			name:    "empty file has no lines",
			content: "",
			ending:  tt.UnixEnding,
			expected: []tt.Issue{
				{Rule: LineEndRuleName, Filename: "test.txt", Message: lineEndMessage, Line: 0},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := DetectMissingLineEnd("test.txt", tc.content, tc.ending)
			assert.Equal(t, tc.expected, issues)
		})
	}
}

func TestFixLineEnd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		ending   string
		expected string
	}{
		{"adds missing lf", "This is a test file.", tt.UnixEnding, "This is a test file.\n"},
		{"keeps proper lf", "This is a test file.\n", tt.UnixEnding, "This is a test file.\n"},
		{"adds missing crlf", "a\r\nb", tt.WindowsEnding, "a\r\nb\r\n"},
		{"upgrades dangling lf", "a\r\nb\n", tt.WindowsEnding, "a\r\nb\r\n"},
		{"completes dangling cr", "a\r", tt.WindowsEnding, "a\r\n"},
		{"replaces dangling cr", "a\r", tt.UnixEnding, "a\n"},
		{"empty file", "", tt.UnixEnding, "\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, FixLineEnd(tc.content, tc.ending))
		})
	}
}

func TestDetectTrailingWhitespace(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		expected []int
	}{
		{"space and tab", "foo \nbar\t\n", []int{1, 2}},
		{"clean", "foo\nbar\n", nil},
		{"last line without break", "foo\nbar  ", []int{2}},
		{"crlf", "foo \r\nbar\r\n", []int{1}},
		{"whitespace only line", "a\n \t\nb\n", []int{2}},
		{"leading whitespace is fine", "  a\n\tb\n", nil},
		{"blank before lone cr", "a \r", []int{1}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := DetectTrailingWhitespace("f.txt", tc.content)

			var lines []int
			for _, issue := range issues {
				assert.Equal(t, TrailingWhitespaceRuleName, issue.Rule)
				assert.Equal(t, "f.txt", issue.Filename)
				assert.Equal(t, trailingWhitespaceMessage, issue.Message)
				lines = append(lines, issue.Line)
			}
			assert.Equal(t, tc.expected, lines)
		})
	}
}

func TestFixTrailingWhitespace(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"space and tab", "foo \nbar\t\n", "foo\nbar\n"},
		{"keeps crlf", "foo  \r\nbar\t\r\n", "foo\r\nbar\r\n"},
		{"last line without break", "a\nb \t ", "a\nb"},
		{"whitespace only lines", " \n\t\n", "\n\n"},
		{"inner whitespace kept", "a b\tc \n", "a b\tc\n"},
		{"unchanged", "x\ny\n", "x\ny\n"},
		{"lone cr kept", "a \r", "a\r"},
		{"uncovered cr before lf dropped", "a\r \nb\n", "a\nb\n"},
		{"uncovered cr at eof dropped", "a\nx\r \t", "a\nx"},
		{"cr before crlf kept", "x\r \r\n", "x\r\r\n"},
		{"cr run before lf dropped", "x \r \r\t\ny", "x\ny"},
		{"cr without blanks untouched", "a\rb \n", "a\rb\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, FixTrailingWhitespace(tc.content))
		})
	}
}

var propertyInputs = []string{
	"",
	"hello",
	"hello\n",
	"foo \nbar\t\n",
	"a\r\nb\r\n",
	"a\r\nb\n",
	"a\r\nb \r\n  ",
	"a \r",
	"\r",
	"\n \n\t",
	"mixed\r\nline \nend\t",
	"x\r \ny",
	"a\r \nb\n",
	"x\r ",
	"x\r \r\n",
	"\r \r",
}

func TestFixIsIdempotent(t *testing.T) {
	t.Parallel()
	for _, content := range propertyInputs {
		for _, ending := range []string{tt.UnixEnding, tt.WindowsEnding} {
			once := FixLineEnd(content, ending)
			assert.Equal(t, once, FixLineEnd(once, ending), "line-end %q", content)
		}
		once := FixTrailingWhitespace(content)
		assert.Equal(t, once, FixTrailingWhitespace(once), "trailing-whitespace %q", content)
	}
}

func TestDetectAndFixAgree(t *testing.T) {
	t.Parallel()
	for _, content := range propertyInputs {
		for _, ending := range []string{tt.UnixEnding, tt.WindowsEnding} {
			issues := DetectMissingLineEnd("f", content, ending)
			fixed := FixLineEnd(content, ending)
			assert.Equal(t, len(issues) == 0, fixed == content, "line-end %q", content)
		}

		issues := DetectTrailingWhitespace("f", content)
		fixed := FixTrailingWhitespace(content)
		assert.Equal(t, len(issues) == 0, fixed == content, "trailing-whitespace %q", content)
		require.Empty(t, DetectTrailingWhitespace("f", fixed))
	}
}

func TestFixTrailingWhitespacePreservesLineBreaks(t *testing.T) {
	t.Parallel()
	breaks := func(content string) []string {
		var brks []string
		for _, l := range splitLines(content) {
			if l.brk != "" {
				brks = append(brks, l.brk)
			}
		}
		return brks
	}

	for _, content := range propertyInputs {
		fixed := FixTrailingWhitespace(content)
		assert.Equal(t, strings.Count(content, "\n"), strings.Count(fixed, "\n"), "%q", content)
		assert.Equal(t, breaks(content), breaks(fixed), "%q", content)
	}
}
