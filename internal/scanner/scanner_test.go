package scanner

import (
	"reflect"
	"testing"

	"codemend/internal/defect"
	"codemend/internal/rules"
)

func TestScanEmptyMapping(t *testing.T) {
	if got := Scan(map[string]string{}); len(got) != 0 {
		t.Fatalf("expected no defects, got %d", len(got))
	}
}

func TestScanDeterminism(t *testing.T) {
	files := map[string]string{
		"src/app.js":    "console.log(\"boot\");\nconst x = y;\n",
		"src/util.ts":   "function add(a, b) {\n  return a + b;\n}\n",
		"src/List.tsx":  "export const List = ({items}: Props) => items.map(item => <li>{item}</li>);\n",
		"src/query.js":  "db.run(\"SELECT * FROM users WHERE id = \" + id);\n",
		"src/danger.js": "eval(payload);\n",
	}
	first := Scan(files)
	second := Scan(files)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scan is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("expected defects in seeded project")
	}
}

func TestUndefinedVariableScenario(t *testing.T) {
	files := map[string]string{
		"app.js": "const a = 1;\nconst x = y;\n",
	}
	defects := Scan(files)
	if len(defects) != 1 {
		t.Fatalf("expected exactly one defect, got %d: %+v", len(defects), defects)
	}
	d := defects[0]
	if d.Category != defect.CategoryRuntime {
		t.Errorf("category = %q, want runtime", d.Category)
	}
	if d.Severity != defect.SeverityError {
		t.Errorf("severity = %q, want error", d.Severity)
	}
	if d.Line != 2 {
		t.Errorf("line = %d, want 2", d.Line)
	}
}

func TestUndefinedVariableResolvedAcrossFiles(t *testing.T) {
	files := map[string]string{
		"app.js": "const x = y;\n",
		"lib.js": "const y = 42;\n",
	}
	if defects := Scan(files); len(defects) != 0 {
		t.Fatalf("expected no defects when y is declared elsewhere, got %+v", defects)
	}
}

func TestUndefinedVariableSkipsGlobals(t *testing.T) {
	files := map[string]string{
		"app.js": "const nothing = undefined;\nconst pi = Math;\n",
	}
	if defects := Scan(files); len(defects) != 0 {
		t.Fatalf("expected no defects for known globals, got %+v", defects)
	}
}

func TestUntypedParameterScenario(t *testing.T) {
	files := map[string]string{
		"util.ts": "function add(a, b) {\n  return a + b;\n}\n",
	}
	defects := Scan(files)
	if len(defects) != 1 {
		t.Fatalf("expected exactly one defect, got %d: %+v", len(defects), defects)
	}
	d := defects[0]
	if d.Category != defect.CategoryType || d.Severity != defect.SeverityWarning {
		t.Errorf("got %s/%s, want type/warning", d.Category, d.Severity)
	}
}

func TestTypedParametersNotFlagged(t *testing.T) {
	files := map[string]string{
		"util.ts": "function add(a: number, b: number): number {\n  return a + b;\n}\n",
	}
	if defects := Scan(files); len(defects) != 0 {
		t.Fatalf("expected no defects, got %+v", defects)
	}
}

func TestAnyAnnotation(t *testing.T) {
	files := map[string]string{
		"util.ts": "function parse(input: any) {\n  return input;\n}\n",
	}
	defects := Scan(files)
	if len(defects) != 1 {
		t.Fatalf("expected exactly one defect, got %d: %+v", len(defects), defects)
	}
	if defects[0].Category != defect.CategoryType || defects[0].Severity != defect.SeverityInfo {
		t.Errorf("got %s/%s, want type/info", defects[0].Category, defects[0].Severity)
	}
}

func TestMissingListKey(t *testing.T) {
	files := map[string]string{
		"List.jsx": "const List = () => items.map(item => <li>{item}</li>);\n",
	}
	defects := Scan(files)
	if len(defects) != 1 {
		t.Fatalf("expected exactly one defect, got %d: %+v", len(defects), defects)
	}
	if defects[0].Category != defect.CategoryLogic || defects[0].Severity != defect.SeverityWarning {
		t.Errorf("got %s/%s, want logic/warning", defects[0].Category, defects[0].Severity)
	}
}

func TestListKeyPresent(t *testing.T) {
	files := map[string]string{
		"List.jsx": "const List = () => items.map(item => <li key={item.id}>{item.name}</li>);\n",
	}
	if defects := Scan(files); len(defects) != 0 {
		t.Fatalf("expected no defects, got %+v", defects)
	}
}

func TestConditionalHook(t *testing.T) {
	files := map[string]string{
		"Widget.jsx": "const Widget = ({ready}) => {\n  if (ready) { useEffect(load); }\n  return null;\n};\n",
	}
	defects := Scan(files)
	if len(defects) != 1 {
		t.Fatalf("expected exactly one defect, got %d: %+v", len(defects), defects)
	}
	d := defects[0]
	if d.Category != defect.CategoryLogic || d.Severity != defect.SeverityError {
		t.Errorf("got %s/%s, want logic/error", d.Category, d.Severity)
	}
	if d.Line != 2 {
		t.Errorf("line = %d, want 2", d.Line)
	}
}

func TestPanickingMatcherDoesNotAbortScan(t *testing.T) {
	saved := rules.Table
	t.Cleanup(func() { rules.Table = saved })
	rules.Table = append(rules.Table, rules.Rule{
		Name:     "always-panics",
		Category: defect.CategoryLogic,
		Severity: defect.SeverityWarning,
		Matcher:  func(string) []rules.Match { panic("matcher blew up") },
		Message:  "never reported",
	})

	files := map[string]string{
		"a.js": "console.log(\"first\");\n",
		"b.js": "eval(payload);\n",
	}
	defects := Scan(files)
	if len(defects) != 2 {
		t.Fatalf("expected 2 defects from the surviving rules, got %d: %+v", len(defects), defects)
	}
	for _, d := range defects {
		if d.Message == "never reported" {
			t.Fatalf("panicking rule produced a defect: %+v", d)
		}
	}
	if defects[0].File != "a.js" || defects[1].File != "b.js" {
		t.Errorf("files = %s, %s, want a.js, b.js", defects[0].File, defects[1].File)
	}
}

func TestLineNumbersFromMatchOffset(t *testing.T) {
	files := map[string]string{
		"app.js": "const ok = 1;\n\nconsole.log(\"here\");\n",
	}
	defects := Scan(files)
	if len(defects) != 1 {
		t.Fatalf("expected exactly one defect, got %d: %+v", len(defects), defects)
	}
	if defects[0].Line != 3 {
		t.Errorf("line = %d, want 3", defects[0].Line)
	}
	if defects[0].Snippet != "console.log(\"here\");" {
		t.Errorf("snippet = %q", defects[0].Snippet)
	}
}
