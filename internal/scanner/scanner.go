// Package scanner applies the rule table plus language-aware heuristics to
// a snapshot of project files. It is pure over its input: no I/O, no shared
// state, and identical input always yields the identical defect list.
package scanner

import (
	"fmt"
	"sort"
	"strings"

	"codemend/internal/defect"
	"codemend/internal/rules"
)

// Scan evaluates every rule against every file and returns defects in
// discovery order: sorted file paths, then table order, then match offset.
func Scan(files map[string]string) []defect.Defect {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var out []defect.Defect
	for _, path := range paths {
		out = append(out, scanFile(path, files[path], files)...)
	}
	return out
}

func scanFile(path, text string, all map[string]string) []defect.Defect {
	var out []defect.Defect
	for _, r := range rules.Table {
		if r.Matcher == nil {
			continue
		}
		for _, m := range evaluate(r, text) {
			out = append(out, newDefect(r, path, text, m.Offset))
		}
	}
	out = append(out, undefinedVariables(path, text, all)...)
	if isTypeScript(path) {
		out = append(out, typescriptPass(path, text)...)
	}
	if isComponent(path) {
		out = append(out, componentPass(path, text)...)
	}
	return out
}

// evaluate isolates a single rule: a panicking matcher loses its own
// matches but never aborts the rest of the scan.
func evaluate(r rules.Rule, text string) (out []rules.Match) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return r.Matcher(text)
}

func newDefect(r rules.Rule, path, text string, offset int) defect.Defect {
	line, col := position(text, offset)
	return defect.Defect{
		ID:       defectID(r.Name, path, line, col),
		Category: r.Category,
		Severity: r.Severity,
		File:     path,
		Line:     line,
		Column:   col,
		Message:  r.Message,
		Snippet:  snippetAt(text, offset),
	}
}

// ruleDefect builds a defect for the language-aware passes, pulling
// classification from the rule table by name.
func ruleDefect(name, path, text string, offset int, message string) defect.Defect {
	line, col := position(text, offset)
	return defect.Defect{
		ID:       defectID(name, path, line, col),
		Category: rules.CategoryOf(name),
		Severity: rules.SeverityOf(name),
		File:     path,
		Line:     line,
		Column:   col,
		Message:  message,
		Snippet:  snippetAt(text, offset),
	}
}

// defectID is deterministic so two scans of the same input agree.
func defectID(rule, path string, line, col int) string {
	return fmt.Sprintf("def:%s:%s:%d:%d", rule, path, line, col)
}

// position converts a byte offset to a 1-based line and column.
func position(text string, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line = 1 + strings.Count(before, "\n")
	col = offset - strings.LastIndexByte(before, '\n')
	return line, col
}

func snippetAt(text string, offset int) string {
	if offset < 0 || offset > len(text) {
		return ""
	}
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	s := strings.TrimSpace(text[start:end])
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func isTypeScript(path string) bool {
	return strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx")
}

func isComponent(path string) bool {
	return strings.HasSuffix(path, ".jsx") || strings.HasSuffix(path, ".tsx")
}
