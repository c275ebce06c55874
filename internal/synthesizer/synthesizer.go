// Package synthesizer turns a defect and its diagnosis into a candidate
// fix: a complete replacement file plus a line-level diff. A response the
// fix cannot be extracted from yields nil, never an error — the
// orchestrator skips the defect and keeps going.
package synthesizer

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"codemend/internal/defect"
	"codemend/internal/llm"
)

const synthesizeSystem = `You are a senior software engineer writing a minimal, safe fix.
Rewrite the entire file with the defect resolved. Change nothing unrelated.
Respond with exactly:
1. One fenced code block containing the complete fixed file.
2. A line starting with "EXPLANATION:" followed by a short explanation.`

const defaultConfidence = 70

// Synthesizer produces candidate fixes via the injected reasoning client.
type Synthesizer struct {
	LLM llm.Client
}

// Synthesize returns a Fix for d, or nil when no usable replacement file
// could be extracted from the model response.
func (s *Synthesizer) Synthesize(ctx context.Context, d defect.Defect, diag defect.Diagnosis, files map[string]string) *defect.Fix {
	original, ok := files[d.File]
	if !ok {
		log.Printf("synthesize %s: file %s not in mapping", d.ID, d.File)
		return nil
	}
	text, err := s.LLM.Generate(ctx, llm.Request{
		System: synthesizeSystem,
		Prompt: buildSynthesizePrompt(d, diag, original),
	})
	if err != nil {
		log.Printf("synthesize %s: %v", d.ID, err)
		return nil
	}
	updated, found := extractFileBlock(text)
	if !found {
		log.Printf("synthesize %s: no replacement file block in response", d.ID)
		return nil
	}
	confidence := defaultConfidence
	if top, ok := diag.TopCandidate(); ok {
		confidence = top.Confidence
	}
	return &defect.Fix{
		ID:          defect.NewFixID(),
		DefectID:    d.ID,
		File:        d.File,
		Original:    original,
		Updated:     updated,
		Explanation: extractExplanation(text),
		Confidence:  confidence,
		Diff:        Diff(original, updated),
	}
}

func buildSynthesizePrompt(d defect.Defect, diag defect.Diagnosis, original string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[DEFECT]\ncategory: %s\nseverity: %s\nlocation: %s:%d\nmessage: %s\n",
		d.Category, d.Severity, d.File, d.Line, d.Message)
	fmt.Fprintf(&b, "\n[ROOT CAUSE]\n%s\n", diag.RootCause)
	if top, ok := diag.TopCandidate(); ok {
		fmt.Fprintf(&b, "\n[SUGGESTED FIX]\n%s\n", top.Description)
	}
	fmt.Fprintf(&b, "\n[CURRENT FILE %s]\n%s\n", d.File, original)
	return b.String()
}

var fencedBlockRE = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\n(.*?)```")

// extractFileBlock returns the body of the first fenced code block.
func extractFileBlock(text string) (string, bool) {
	m := fencedBlockRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func extractExplanation(text string) string {
	if i := strings.Index(text, "EXPLANATION:"); i >= 0 {
		expl := text[i+len("EXPLANATION:"):]
		if j := strings.Index(expl, "```"); j >= 0 {
			expl = expl[:j]
		}
		if expl = strings.TrimSpace(expl); expl != "" {
			return expl
		}
	}
	return "automated fix generated from root-cause analysis"
}
