package analyzer

import (
	"context"
	"errors"
	"testing"

	"codemend/internal/defect"
	"codemend/internal/llm"
)

var testDefect = defect.Defect{
	ID:       "def:undefined-variable:app.js:2:11",
	Category: defect.CategoryRuntime,
	Severity: defect.SeverityError,
	File:     "app.js",
	Line:     2,
	Message:  "'y' is used but never declared",
	Snippet:  "const x = y;",
}

var testFiles = map[string]string{
	"app.js": "const a = 1;\nconst x = y;\n",
}

const goodResponse = `Looking at the file, the underlying issue is clear.
{
  "rootCause": "the module references y which was removed in a refactor",
  "relatedFiles": ["app.js", "legacy.js"],
  "affectedFeatures": ["startup"],
  "suggestedFixes": [
    {"description": "declare y before use", "confidence": 85, "complexity": "low", "breaking": false},
    {"description": "inline the removed value", "confidence": 60, "complexity": "medium", "breaking": false}
  ],
  "prevention": "enable no-undef linting in CI"
}`

func TestAnalyzeParsesEmbeddedJSON(t *testing.T) {
	a := New(llm.NewFakeClient(goodResponse))
	diag := a.Analyze(context.Background(), testDefect, testFiles)

	if diag.DefectID != testDefect.ID {
		t.Errorf("defect id = %q", diag.DefectID)
	}
	if diag.RootCause != "the module references y which was removed in a refactor" {
		t.Errorf("root cause = %q", diag.RootCause)
	}
	if len(diag.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(diag.Candidates))
	}
	top, ok := diag.TopCandidate()
	if !ok || top.Confidence != 85 {
		t.Errorf("top candidate = %+v, ok=%v", top, ok)
	}
}

func TestAnalyzeServiceErrorFallsBack(t *testing.T) {
	client := llm.NewFakeClient()
	client.Err = errors.New("connection reset")
	a := New(client)

	diag := a.Analyze(context.Background(), testDefect, testFiles)
	assertFallback(t, diag)
}

func TestAnalyzeUnparseableResponseFallsBack(t *testing.T) {
	a := New(llm.NewFakeClient("I am quite sure the problem is somewhere in the file."))
	diag := a.Analyze(context.Background(), testDefect, testFiles)
	assertFallback(t, diag)
}

// The fallback invariant: no candidates, non-empty prevention advice, and
// the defect's own file as the only related file.
func assertFallback(t *testing.T, diag defect.Diagnosis) {
	t.Helper()
	if len(diag.Candidates) != 0 {
		t.Errorf("fallback diagnosis has %d candidates, want 0", len(diag.Candidates))
	}
	if diag.Prevention == "" {
		t.Error("fallback diagnosis must carry prevention advice")
	}
	if diag.RootCause != "undetermined" {
		t.Errorf("root cause = %q, want undetermined", diag.RootCause)
	}
	if len(diag.RelatedFiles) != 1 || diag.RelatedFiles[0] != testDefect.File {
		t.Errorf("related files = %v", diag.RelatedFiles)
	}
}

func TestAnalyzeCachesByLocationAndContent(t *testing.T) {
	client := llm.NewFakeClient(goodResponse)
	a := New(client)

	first := a.Analyze(context.Background(), testDefect, testFiles)
	second := a.Analyze(context.Background(), testDefect, testFiles)
	if client.CallCount() != 1 {
		t.Fatalf("service called %d times, want 1 (cache hit)", client.CallCount())
	}
	if first.RootCause != second.RootCause {
		t.Error("cached diagnosis differs from original")
	}

	// Changed file content must miss the cache.
	changed := map[string]string{"app.js": "const x = y;\n"}
	a.Analyze(context.Background(), testDefect, changed)
	if client.CallCount() != 2 {
		t.Fatalf("service called %d times after content change, want 2", client.CallCount())
	}
}

func TestAnalyzeDoesNotCacheFallback(t *testing.T) {
	client := llm.NewFakeClient("no structure at all")
	a := New(client)

	a.Analyze(context.Background(), testDefect, testFiles)
	a.Analyze(context.Background(), testDefect, testFiles)
	if client.CallCount() != 2 {
		t.Fatalf("service called %d times, want 2 (fallbacks are not cached)", client.CallCount())
	}
}
