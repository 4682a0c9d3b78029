package types

import (
	"fmt"
	"strings"
)

const (
	UnixEnding    = "\n"
	WindowsEnding = "\r\n"
)

// LineEnding selects the canonical end-of-line sequence for a file.
type LineEnding int

const (
	// LineEndingAuto infers the ending from the file content.
	LineEndingAuto LineEnding = iota
	LineEndingUnix
	LineEndingWindows
)

// Ending returns the line ending sequence that content should use.
// For LineEndingAuto, content containing at least one "\r\n" resolves
// to Windows endings; anything else resolves to Unix endings.
func (l LineEnding) Ending(content string) string {
	switch l {
	case LineEndingUnix:
		return UnixEnding
	case LineEndingWindows:
		return WindowsEnding
	default:
		if strings.Contains(content, WindowsEnding) {
			return WindowsEnding
		}
		return UnixEnding
	}
}

func (l LineEnding) String() string {
	switch l {
	case LineEndingUnix:
		return "unix"
	case LineEndingWindows:
		return "windows"
	case LineEndingAuto:
		return "auto"
	default:
		return fmt.Sprintf("LineEnding(%d)", int(l))
	}
}

// ParseLineEnding converts a user supplied name into a LineEnding.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return LineEndingAuto, nil
	case "unix", "lf":
		return LineEndingUnix, nil
	case "windows", "crlf":
		return LineEndingWindows, nil
	default:
		return LineEndingAuto, fmt.Errorf("unknown line ending %q (want auto, unix or windows)", s)
	}
}
