package compiler

import "fmt"

// Warning codes (W300-W399).
const (
	WarnUnknownSymbol = "W301" // function symbol has no JML translation
)

// Diagnostic is a non-fatal finding. Translation continues after it.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Symbol  string `json:"symbol,omitempty"`
	Command string `json:"command,omitempty"`
	Line    int    `json:"line,omitempty"`
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("[%s] %s", d.Code, d.Message)
	if d.Command != "" {
		s = fmt.Sprintf("%s (%s)", s, d.Command)
	}
	if d.Line > 0 {
		s = fmt.Sprintf("line %d: %s", d.Line, s)
	}
	return s
}

// Reporter receives diagnostics as they are produced.
type Reporter func(Diagnostic)
