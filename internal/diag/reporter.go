package diag

import "morph/internal/source"

// Reporter receives diagnostics from the lexer and parser.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// Builder collects notes before handing a diagnostic to a Reporter.
type Builder struct {
	r       Reporter
	d       Diagnostic
	emitted bool
}

func Report(r Reporter, sev Severity, code Code, primary source.Span, msg string) *Builder {
	return &Builder{r: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *Builder {
	return Report(r, SevError, code, primary, msg)
}

func (b *Builder) WithNote(sp source.Span, msg string) *Builder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

// Emit reports the diagnostic. Later calls do nothing.
func (b *Builder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.r != nil {
		b.r.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
	}
}

// BagReporter adds to a Bag; diagnostics past its limit are dropped.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}
