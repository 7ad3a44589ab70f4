// Package classify maps tool-specific warning identifiers to severity
// weights. Severity levels are 1 (could be fixed: style issues), 2 (should
// be fixed: might cause problems or bugs), and 3 (must be fixed: dangerous
// or highly bugprone).
package classify

import "github.com/adrianzap/softwipe/domain"

// Severity is a warning weight between 1 and 3.
type Severity int

const (
	SeverityCouldFix  Severity = 1
	SeverityShouldFix Severity = 2
	SeverityMustFix   Severity = 3
)

// Table maps warning identifiers to severities. Tables are versioned data:
// changing an entry changes score comparability across historical runs.
// Tables are passed explicitly into the adapters that classify with them;
// nothing consults them ambiently.
type Table map[string]Severity

// Classify returns the severity for an identifier. Identifiers not in the
// table default to severity 1.
func (t Table) Classify(identifier string) Severity {
	if s, ok := t[identifier]; ok {
		return s
	}
	return SeverityCouldFix
}

// Record builds a classified WarningRecord for an identifier.
func (t Table) Record(file string, line int, identifier string) domain.WarningRecord {
	return domain.WarningRecord{
		File:     file,
		Line:     line,
		Category: identifier,
		Severity: int(t.Classify(identifier)),
	}
}

// WeightedCount sums the severities of the given records.
func WeightedCount(records []domain.WarningRecord) int {
	total := 0
	for _, r := range records {
		total += r.Severity
	}
	return total
}
