package validator

import "fmt"

// Severity classifies a finding. Errors fail the file; warnings and info
// never affect the verdict.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// String returns the lowercase severity name used in structured output.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Finding is one classified validation message. Findings are append-only
// and never mutate after being recorded.
type Finding struct {
	Severity Severity
	Message  string
}

// Result accumulates the findings of one file's validation run. Each run
// owns its own Result; nothing is shared across files.
type Result struct {
	File     string
	Findings []Finding
}

// Errorf records an Error finding.
func (r *Result) Errorf(format string, args ...any) {
	r.Findings = append(r.Findings, Finding{SeverityError, fmt.Sprintf(format, args...)})
}

// Warnf records a Warning finding.
func (r *Result) Warnf(format string, args ...any) {
	r.Findings = append(r.Findings, Finding{SeverityWarning, fmt.Sprintf(format, args...)})
}

// Infof records an Info finding.
func (r *Result) Infof(format string, args ...any) {
	r.Findings = append(r.Findings, Finding{SeverityInfo, fmt.Sprintf(format, args...)})
}

// bySeverity returns the messages of all findings with the given severity,
// in recording order.
func (r *Result) bySeverity(s Severity) []string {
	var msgs []string
	for _, f := range r.Findings {
		if f.Severity == s {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

// Errors returns all Error messages.
func (r *Result) Errors() []string { return r.bySeverity(SeverityError) }

// Warnings returns all Warning messages.
func (r *Result) Warnings() []string { return r.bySeverity(SeverityWarning) }

// Info returns all Info messages.
func (r *Result) Info() []string { return r.bySeverity(SeverityInfo) }

// Passed reports the file verdict: PASS iff no Error findings were recorded.
func (r *Result) Passed() bool { return len(r.Errors()) == 0 }
