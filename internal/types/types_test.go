package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineEnding_Ending(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		ending   LineEnding
		content  string
		expected string
	}{
		{"unix always lf", LineEndingUnix, "a\r\nb\r\n", "\n"},
		{"windows always crlf", LineEndingWindows, "a\nb\n", "\r\n"},
		{"auto with crlf", LineEndingAuto, "a\nb\r\nc", "\r\n"},
		{"auto with lf only", LineEndingAuto, "a\nb\n", "\n"},
		{"auto without breaks", LineEndingAuto, "hello", "\n"},
		{"auto empty", LineEndingAuto, "", "\n"},
		{"auto lone cr", LineEndingAuto, "a\rb\r", "\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.ending.Ending(tt.content))
		})
	}
}

func TestLineEnding_AutoIsPerContent(t *testing.T) {
	t.Parallel()
	auto := LineEndingAuto

	assert.Equal(t, WindowsEnding, auto.Ending("x\r\n"))
	assert.Equal(t, UnixEnding, auto.Ending("x\n"))
	assert.Equal(t, WindowsEnding, auto.Ending("x\r\n"))
}

func TestParseLineEnding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected LineEnding
	}{
		{"", LineEndingAuto},
		{"auto", LineEndingAuto},
		{"Unix", LineEndingUnix},
		{"lf", LineEndingUnix},
		{"WINDOWS", LineEndingWindows},
		{" crlf ", LineEndingWindows},
	}

	for _, tt := range tests {
		got, err := ParseLineEnding(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}

	_, err := ParseLineEnding("mac")
	assert.Error(t, err)
}

func TestLineEnding_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "auto", LineEndingAuto.String())
	assert.Equal(t, "unix", LineEndingUnix.String())
	assert.Equal(t, "windows", LineEndingWindows.String())
	assert.Equal(t, "LineEnding(7)", LineEnding(7).String())
}

func TestIssue_String(t *testing.T) {
	t.Parallel()
	issue := Issue{
		Rule:     "line-end",
		Filename: "src/main.go",
		Message:  "File does not end with the expected line ending",
		Line:     12,
	}
	assert.Equal(t,
		"line-end: File does not end with the expected line ending in file src/main.go at line 12",
		issue.String())
}
