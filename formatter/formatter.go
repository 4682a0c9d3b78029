package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	tt "github.com/gnolang/linelint/internal/types"
)

// Format selects how issues are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	successStyle = color.New(color.FgGreen, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
)

// ParseFormat converts a user supplied output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Write renders issues to w.
//
// The text format prints one issue per line as
// "<rule>: <description> in file <filename> at line <n>".
// The json and yaml formats group issues by file name.
func Write(w io.Writer, issues []tt.Issue, format Format) error {
	switch format {
	case FormatJSON:
		d, err := json.MarshalIndent(groupByFile(issues), "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling issues to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(d))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(groupByFile(issues)); err != nil {
			return fmt.Errorf("error marshalling issues to YAML: %w", err)
		}
		return enc.Close()
	default:
		for _, issue := range issues {
			if _, err := fmt.Fprintln(w, formatIssue(issue)); err != nil {
				return err
			}
		}
		return nil
	}
}

func formatIssue(issue tt.Issue) string {
	return ruleStyle.Sprint(issue.Rule) + ": " + issue.Message +
		" in file " + fileStyle.Sprint(issue.Filename) +
		" at line " + lineStyle.Sprint(issue.Line)
}

func groupByFile(issues []tt.Issue) map[string][]tt.Issue {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}
	return issuesByFile
}

// Summary returns a one line description of a check result.
func Summary(issues []tt.Issue) string {
	if len(issues) == 0 {
		return successStyle.Sprint("No issues found.")
	}

	files := make(map[string]struct{})
	for _, issue := range issues {
		files[issue.Filename] = struct{}{}
	}
	return errorStyle.Sprintf("Found %s in %s.",
		plural(len(issues), "issue"), plural(len(files), "file"))
}

// FormatSummary returns a one line description of a format result.
func FormatSummary(changed []string, dryRun bool) string {
	switch {
	case len(changed) == 0:
		return successStyle.Sprint("All files are already formatted.")
	case dryRun:
		return errorStyle.Sprintf("%s would be formatted.", plural(len(changed), "file"))
	default:
		return successStyle.Sprintf("Formatted %s.", plural(len(changed), "file"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
