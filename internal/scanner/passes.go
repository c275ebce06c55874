package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"codemend/internal/defect"
	"codemend/internal/rules"
)

// declInitRE captures `const x = y;` style declarations whose initializer
// is a bare identifier.
var declInitRE = regexp.MustCompile(`\b(?:const|let|var)\s+[A-Za-z_$][\w$]*\s*=\s*([A-Za-z_$][\w$]*)\s*;`)

// globals that never need a declaration in the mapping.
var knownGlobals = map[string]bool{
	"undefined": true, "null": true, "true": true, "false": true,
	"NaN": true, "Infinity": true,
	"window": true, "document": true, "console": true, "process": true,
	"Math": true, "JSON": true, "Date": true, "Object": true, "Array": true,
	"String": true, "Number": true, "Boolean": true, "Promise": true,
	"require": true, "module": true, "globalThis": true,
}

// undefinedVariables flags bare-identifier initializers that are declared
// nowhere in the whole file mapping.
func undefinedVariables(path, text string, all map[string]string) []defect.Defect {
	var out []defect.Defect
	for _, idx := range declInitRE.FindAllStringSubmatchIndex(text, -1) {
		name := text[idx[2]:idx[3]]
		if knownGlobals[name] {
			continue
		}
		if declaredAnywhere(name, all) {
			continue
		}
		d := ruleDefect(rules.UndefinedVariable, path, text, idx[2],
			fmt.Sprintf("'%s' is used but never declared", name))
		out = append(out, d)
	}
	return out
}

func declaredAnywhere(name string, all map[string]string) bool {
	decl := regexp.MustCompile(`\b(?:const|let|var|function|class)\s+` + regexp.QuoteMeta(name) + `\b`)
	imp := regexp.MustCompile(`(?m)^\s*import\b[^\n]*\b` + regexp.QuoteMeta(name) + `\b`)
	for _, text := range all {
		if decl.MatchString(text) || imp.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	funcDeclRE = regexp.MustCompile(`\bfunction\s+[A-Za-z_$][\w$]*\s*\(([^)]*)\)`)
	arrowRE    = regexp.MustCompile(`\(([^)]*)\)\s*=>`)
	anyRE      = regexp.MustCompile(`:\s*any\b`)
)

// typescriptPass runs on .ts/.tsx files: parameters without a type
// annotation and explicit any annotations.
func typescriptPass(path, text string) []defect.Defect {
	var out []defect.Defect
	flagUntyped := func(idx []int) {
		params := strings.TrimSpace(text[idx[2]:idx[3]])
		if params == "" || strings.Contains(params, ":") {
			return
		}
		out = append(out, ruleDefect(rules.UntypedParameter, path, text, idx[0],
			fmt.Sprintf("parameters (%s) have no type annotations", params)))
	}
	for _, idx := range funcDeclRE.FindAllStringSubmatchIndex(text, -1) {
		flagUntyped(idx)
	}
	for _, idx := range arrowRE.FindAllStringSubmatchIndex(text, -1) {
		flagUntyped(idx)
	}
	for _, loc := range anyRE.FindAllStringIndex(text, -1) {
		out = append(out, ruleDefect(rules.AnyAnnotation, path, text, loc[0],
			"explicit any defeats type checking"))
	}
	return out
}

var (
	mapRenderRE = regexp.MustCompile(`\.map\s*\(\s*(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>\s*\(?\s*<[A-Za-z][\w.]*`)
	condHookRE  = regexp.MustCompile(`(?s)\bif\s*\([^)]*\)\s*\{[^{}]*?\b(use[A-Z]\w*)\s*\(`)
)

// componentPass runs on .jsx/.tsx files: list rendering without a key prop
// and hook calls nested inside a conditional.
func componentPass(path, text string) []defect.Defect {
	var out []defect.Defect
	for _, loc := range mapRenderRE.FindAllStringIndex(text, -1) {
		lt := strings.IndexByte(text[loc[0]:loc[1]], '<') + loc[0]
		if !hasKeyProp(text, lt) {
			out = append(out, ruleDefect(rules.MissingListKey, path, text, lt,
				"list items rendered without a stable key prop"))
		}
	}
	for _, idx := range condHookRE.FindAllStringSubmatchIndex(text, -1) {
		hook := text[idx[2]:idx[3]]
		out = append(out, ruleDefect(rules.ConditionalHook, path, text, idx[2],
			fmt.Sprintf("%s is called conditionally; hooks must run on every render", hook)))
	}
	return out
}

// hasKeyProp inspects the opening tag starting at lt for a key attribute.
func hasKeyProp(text string, lt int) bool {
	end := lt
	limit := lt + 300
	if limit > len(text) {
		limit = len(text)
	}
	for end < limit && text[end] != '>' {
		end++
	}
	return strings.Contains(text[lt:end], "key=")
}
