// Package defect holds the data model shared across the remediation
// pipeline: defects found by the scanner, root-cause diagnoses, candidate
// fixes, and the aggregate result of one healing run.
package defect

// Category classifies the kind of problem a defect represents.
type Category string

const (
	CategorySyntax      Category = "syntax"
	CategoryType        Category = "type"
	CategoryRuntime     Category = "runtime"
	CategoryLogic       Category = "logic"
	CategoryStyle       Category = "style"
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
)

// Severity grades how urgent a defect is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns a numeric rank for sorting (lower = more severe).
// Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 3
	default:
		return 4
	}
}

func (s Severity) String() string { return string(s) }

// Defect is a located, classified problem instance. Defects are created by
// the scanner on each pass and are never mutated afterwards.
type Defect struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
	Snippet  string   `json:"snippet,omitempty"`
	Stack    string   `json:"stack,omitempty"`
}
