// Package analyzer asks the reasoning service for the root cause of one
// defect. Analysis never fails hard: any service or parse problem degrades
// to a fallback diagnosis so the orchestrator can move on.
package analyzer

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"codemend/internal/defect"
	"codemend/internal/llm"
	"codemend/internal/util/jsonutil"
)

const analyzeSystem = `You are a senior software engineer performing root-cause analysis.
Explain the underlying cause of the defect, not its surface symptom. A missing
declaration is a symptom; the root cause is why the code expected it to exist.
Answer with a single JSON object of this exact shape and nothing else:
{
  "rootCause": "string",
  "relatedFiles": ["path"],
  "affectedFeatures": ["string"],
  "suggestedFixes": [
    {"description": "string", "confidence": 0, "complexity": "low|medium|high", "breaking": false}
  ],
  "prevention": "string"
}`

// diagnosisPayload is the JSON shape requested from the model.
type diagnosisPayload struct {
	RootCause        string                `json:"rootCause"`
	RelatedFiles     []string              `json:"relatedFiles"`
	AffectedFeatures []string              `json:"affectedFeatures"`
	SuggestedFixes   []defect.CandidateFix `json:"suggestedFixes"`
	Prevention       string                `json:"prevention"`
}

// Analyzer produces one Diagnosis per defect. The reasoning client is
// injected; the LRU cache short-circuits repeated analysis of the same
// defect location across runs.
type Analyzer struct {
	llm   llm.Client
	cache *lru.Cache[string, defect.Diagnosis]
}

func New(client llm.Client) *Analyzer {
	cache, _ := lru.New[string, defect.Diagnosis](256)
	return &Analyzer{llm: client, cache: cache}
}

// Analyze returns a Diagnosis for d. It never returns an error: a failed
// call or unparseable response yields the degraded fallback.
func (a *Analyzer) Analyze(ctx context.Context, d defect.Defect, files map[string]string) defect.Diagnosis {
	key := fingerprint(d, files[d.File])
	if diag, ok := a.cache.Get(key); ok {
		return diag
	}
	text, err := a.llm.Generate(ctx, llm.Request{
		System: analyzeSystem,
		Prompt: buildAnalyzePrompt(d, files[d.File]),
		Effort: "low",
	})
	if err != nil {
		log.Printf("analyze %s: %v; using fallback diagnosis", d.ID, err)
		return Fallback(d)
	}
	raw, ok := jsonutil.ExtractObject(text)
	if !ok {
		log.Printf("analyze %s: no JSON object in response; using fallback diagnosis", d.ID)
		return Fallback(d)
	}
	var payload diagnosisPayload
	if err := jsonutil.UnmarshalFlex(raw, &payload); err != nil {
		log.Printf("analyze %s: %v; using fallback diagnosis", d.ID, err)
		return Fallback(d)
	}
	diag := payload.toDiagnosis(d)
	a.cache.Add(key, diag)
	return diag
}

func (p diagnosisPayload) toDiagnosis(d defect.Defect) defect.Diagnosis {
	diag := defect.Diagnosis{
		DefectID:         d.ID,
		RootCause:        strings.TrimSpace(p.RootCause),
		RelatedFiles:     p.RelatedFiles,
		AffectedFeatures: p.AffectedFeatures,
		Candidates:       p.SuggestedFixes,
		Prevention:       strings.TrimSpace(p.Prevention),
	}
	if diag.RootCause == "" {
		diag.RootCause = "undetermined"
	}
	if len(diag.RelatedFiles) == 0 {
		diag.RelatedFiles = []string{d.File}
	}
	for i, c := range diag.Candidates {
		if c.Confidence < 0 {
			diag.Candidates[i].Confidence = 0
		} else if c.Confidence > 100 {
			diag.Candidates[i].Confidence = 100
		}
	}
	return diag
}

// Fallback is the degraded diagnosis used when reasoning is unavailable.
func Fallback(d defect.Defect) defect.Diagnosis {
	return defect.Diagnosis{
		DefectID:     d.ID,
		RootCause:    "undetermined",
		RelatedFiles: []string{d.File},
		Prevention:   "manual investigation required",
	}
}

// fingerprint keys the cache by defect location plus a content hash, so a
// stale diagnosis is never served for an edited file.
func fingerprint(d defect.Defect, content string) string {
	h := fnv.New64a()
	h.Write([]byte(content))
	return fmt.Sprintf("%s|%d|%s|%x", d.File, d.Line, d.Message, h.Sum64())
}

func buildAnalyzePrompt(d defect.Defect, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[DEFECT]\ncategory: %s\nseverity: %s\nlocation: %s:%d\nmessage: %s\n",
		d.Category, d.Severity, d.File, d.Line, d.Message)
	if d.Snippet != "" {
		fmt.Fprintf(&b, "snippet: %s\n", d.Snippet)
	}
	if d.Stack != "" {
		fmt.Fprintf(&b, "stack:\n%s\n", d.Stack)
	}
	fmt.Fprintf(&b, "\n[FILE %s]\n%s\n", d.File, content)
	return b.String()
}
