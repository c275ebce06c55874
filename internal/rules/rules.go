// Package rules is the declarative pattern-rule table the scanner runs.
// Every rule carries its category and severity so classification derives
// from one source of truth; the scanner never hard-codes either.
package rules

import (
	"regexp"

	"codemend/internal/defect"
)

// Match is one occurrence of a rule inside a file's text.
type Match struct {
	Offset int
	Text   string
}

// Matcher evaluates one rule against a file's full text.
type Matcher func(text string) []Match

// Rule is a named defect signature.
type Rule struct {
	Name     string
	Category defect.Category
	Severity defect.Severity
	Matcher  Matcher
	Message  string
}

// Regex builds a Matcher from a regular expression.
func Regex(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return func(text string) []Match {
		var out []Match
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, Match{Offset: loc[0], Text: text[loc[0]:loc[1]]})
		}
		return out
	}
}

// Names of rules evaluated by the scanner's language-aware passes rather
// than by a table Matcher. They live in the table (with a nil Matcher) so
// category and severity still come from one place.
const (
	UndefinedVariable = "undefined-variable"
	UntypedParameter  = "untyped-parameter"
	AnyAnnotation     = "any-annotation"
	MissingListKey    = "missing-list-key"
	ConditionalHook   = "conditional-hook"
)

// Table is the rule set applied to every scanned file.
var Table = []Rule{
	{
		Name:     "unterminated-string",
		Category: defect.CategorySyntax,
		Severity: defect.SeverityCritical,
		Matcher:  matchUnterminatedString,
		Message:  "string literal is not terminated before end of line",
	},
	{
		Name:     "eval-usage",
		Category: defect.CategorySecurity,
		Severity: defect.SeverityCritical,
		Matcher:  Regex(`\beval\s*\(`),
		Message:  "eval() executes arbitrary strings as code",
	},
	{
		Name:     "sql-concatenation",
		Category: defect.CategorySecurity,
		Severity: defect.SeverityCritical,
		Matcher:  Regex(`["'](?i:select |insert into |update |delete from )[^"'\n]*["']\s*\+`),
		Message:  "SQL statement built by string concatenation",
	},
	{
		Name:     "missing-await",
		Category: defect.CategoryRuntime,
		Severity: defect.SeverityError,
		Matcher:  matchMissingAwait,
		Message:  "promise-returning call is neither awaited nor chained",
	},
	{
		Name:     "loose-equality",
		Category: defect.CategoryLogic,
		Severity: defect.SeverityWarning,
		Matcher:  matchLooseEquality,
		Message:  "loose equality == compares after coercion; use ===",
	},
	{
		Name:     "empty-catch",
		Category: defect.CategoryLogic,
		Severity: defect.SeverityWarning,
		Matcher:  Regex(`catch\s*(\([^)]*\))?\s*\{\s*\}`),
		Message:  "empty catch block swallows the error",
	},
	{
		Name:     "nested-loop",
		Category: defect.CategoryPerformance,
		Severity: defect.SeverityInfo,
		Matcher:  Regex(`(?s)\bfor\s*\([^)]*\)\s*\{[^{}]*\bfor\s*\(`),
		Message:  "nested loop; consider indexing the inner collection",
	},
	{
		Name:     "console-log",
		Category: defect.CategoryStyle,
		Severity: defect.SeverityInfo,
		Matcher:  Regex(`\bconsole\.log\s*\(`),
		Message:  "console.log left in code",
	},
	// Scanner-pass rules: classification only, no table Matcher.
	{Name: UndefinedVariable, Category: defect.CategoryRuntime, Severity: defect.SeverityError,
		Message: "variable is used but never declared"},
	{Name: UntypedParameter, Category: defect.CategoryType, Severity: defect.SeverityWarning,
		Message: "function parameters are missing type annotations"},
	{Name: AnyAnnotation, Category: defect.CategoryType, Severity: defect.SeverityInfo,
		Message: "explicit any defeats type checking"},
	{Name: MissingListKey, Category: defect.CategoryLogic, Severity: defect.SeverityWarning,
		Message: "list rendering without a stable key prop"},
	{Name: ConditionalHook, Category: defect.CategoryLogic, Severity: defect.SeverityError,
		Message: "hook called inside a conditional block"},
}

var byName = func() map[string]Rule {
	m := make(map[string]Rule, len(Table))
	for _, r := range Table {
		m[r.Name] = r
	}
	return m
}()

// ByName looks a rule up by name.
func ByName(name string) (Rule, bool) {
	r, ok := byName[name]
	return r, ok
}

// CategoryOf returns the category assigned to a rule, defaulting to logic
// for unknown names.
func CategoryOf(name string) defect.Category {
	if r, ok := byName[name]; ok {
		return r.Category
	}
	return defect.CategoryLogic
}

// SeverityOf returns the severity assigned to a rule, defaulting to warning
// for unknown names.
func SeverityOf(name string) defect.Severity {
	if r, ok := byName[name]; ok {
		return r.Severity
	}
	return defect.SeverityWarning
}
