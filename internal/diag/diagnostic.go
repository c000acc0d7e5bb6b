package diag

import (
	"fmt"

	"morph/internal/source"
)

// Severity orders diagnostics; SevError rejects a parse.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one lexer or parser finding. Spans are byte offsets into
// the text that was parsed, which for a manipulation is the previewed text.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// String renders "SEVERITY ID start-end message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %d-%d %s", d.Severity, d.Code.ID(), d.Primary.Start, d.Primary.End, d.Message)
}
