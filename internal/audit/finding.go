package audit

import (
	"fmt"
	"strings"

	"krimiwiki/internal/logging"
)

// Finding is an anomaly on one page. Text is pipe-delimited: a fixed message
// optionally followed by the offending values.
type Finding struct {
	Page string
	Text string
}

// String renders the finding as "LOG|page|text".
func (f Finding) String() string {
	return "LOG|" + f.Page + "|" + f.Text
}

// Message is the fixed part of the text.
func (f Finding) Message() string {
	msg, _, _ := strings.Cut(f.Text, "|")
	return msg
}

// Detail is the part of the text after the message.
func (f Finding) Detail() string {
	_, detail, _ := strings.Cut(f.Text, "|")
	return detail
}

func (a *Auditor) report(r *Record, format string, args ...any) {
	a.reportPage(r.Page, fmt.Sprintf(format, args...))
}

func (a *Auditor) reportPage(page, text string) {
	f := Finding{Page: page, Text: text}
	a.findings = append(a.findings, f)

	attrs := []logging.Attr{
		logging.Page(page),
		logging.String(logging.FieldErrorHint, "fix the article or add an exception to the series profile"),
		logging.String(logging.FieldImpact, "reported only"),
	}
	if detail := f.Detail(); detail != "" {
		attrs = append(attrs, logging.String("detail", detail))
	}
	logging.WarnWithContext(a.logger, f.Message(), "audit_finding", attrs...)
}
