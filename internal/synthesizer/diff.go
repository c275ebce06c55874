package synthesizer

import (
	"strings"

	"codemend/internal/defect"
)

// Diff computes the line-aligned diff between the original and updated
// content. Lines are compared at the same index: equal lines emit an
// unchanged entry, a line only in the original emits removed, a line only
// in the update emits added, and differing lines emit removed then added.
// This is deliberately not a minimal-edit diff — alignment by index keeps
// the output deterministic and readable.
func Diff(original, updated string) []defect.DiffLine {
	a := strings.Split(original, "\n")
	b := strings.Split(updated, "\n")
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]defect.DiffLine, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(b):
			out = append(out, defect.DiffLine{Op: defect.DiffRemoved, Line: i + 1, Text: a[i]})
		case i >= len(a):
			out = append(out, defect.DiffLine{Op: defect.DiffAdded, Line: i + 1, Text: b[i]})
		case a[i] == b[i]:
			out = append(out, defect.DiffLine{Op: defect.DiffUnchanged, Line: i + 1, Text: a[i]})
		default:
			out = append(out,
				defect.DiffLine{Op: defect.DiffRemoved, Line: i + 1, Text: a[i]},
				defect.DiffLine{Op: defect.DiffAdded, Line: i + 1, Text: b[i]})
		}
	}
	return out
}

// Reconstruct rebuilds the updated content from a diff, the inverse of
// Diff with respect to its second argument.
func Reconstruct(diff []defect.DiffLine) string {
	var lines []string
	for _, dl := range diff {
		if dl.Op != defect.DiffRemoved {
			lines = append(lines, dl.Text)
		}
	}
	return strings.Join(lines, "\n")
}
