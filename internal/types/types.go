package types

import "fmt"

// Issue represents a lint issue found in a file.
type Issue struct {
	Rule     string `json:"rule" yaml:"rule"`
	Filename string `json:"filename" yaml:"filename"`
	Message  string `json:"message" yaml:"message"`
	Line     int    `json:"line" yaml:"line"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s in file %s at line %d", i.Rule, i.Message, i.Filename, i.Line)
}
