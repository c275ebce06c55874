// Package validator judges candidate fixes by re-scanning a hypothetical
// project state with the fix applied.
package validator

import (
	"codemend/internal/defect"
	"codemend/internal/scanner"
)

// Validate applies fix to a copy of the file mapping, re-runs the scanner,
// and returns whether the fix is acceptable plus any defects remaining in
// the fixed file. The bar is strict: a fix passes only when its file comes
// back completely clean, so a rejection can mean "needs another pass" on a
// file with unrelated preexisting defects, not "irreparable".
func Validate(fix *defect.Fix, files map[string]string) (bool, []defect.Defect) {
	hypothetical := make(map[string]string, len(files))
	for path, text := range files {
		hypothetical[path] = text
	}
	hypothetical[fix.File] = fix.Updated

	var remaining []defect.Defect
	for _, d := range scanner.Scan(hypothetical) {
		if d.File == fix.File {
			remaining = append(remaining, d)
		}
	}
	return len(remaining) == 0, remaining
}
