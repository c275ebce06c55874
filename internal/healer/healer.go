// Package healer orchestrates the remediation pipeline: scan, sort by
// severity, then drive each defect through analysis, synthesis, and
// validation. Defects are processed strictly sequentially — an
// auto-applied fix mutates the shared file mapping and later defects in
// the same file must see the healed content.
package healer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"codemend/internal/analyzer"
	"codemend/internal/defect"
	"codemend/internal/llm"
	"codemend/internal/scanner"
	"codemend/internal/synthesizer"
	"codemend/internal/validator"
)

const defaultMaxFixes = 10

// Options configures one healing run.
type Options struct {
	// MaxFixes bounds how many defects are attempted; defects beyond the
	// bound are reported as detected but not worked on. Defaults to 10.
	MaxFixes int
	// AutoApply commits validated fixes into the file mapping so later
	// defects see the healed content.
	AutoApply bool
	// OnProgress, when set, receives every stage transition.
	OnProgress ProgressFunc
}

// Healer runs healing passes. Per-file fix history accumulates across runs
// on the same instance until Reset.
type Healer struct {
	analyzer *analyzer.Analyzer
	synth    *synthesizer.Synthesizer
	history  map[string][]defect.Fix
}

// New builds a Healer around the injected reasoning client.
func New(client llm.Client) *Healer {
	return &Healer{
		analyzer: analyzer.New(client),
		synth:    &synthesizer.Synthesizer{LLM: client},
		history:  make(map[string][]defect.Fix),
	}
}

// Heal runs one full pipeline pass over files. Per-defect failures —
// degraded diagnoses, null syntheses, validator rejections — are absorbed;
// the summary's Fixed falling short of Detected is the expected signal of
// partial success.
func (h *Healer) Heal(ctx context.Context, files map[string]string, opts Options) (*defect.Result, error) {
	start := time.Now()
	maxFixes := opts.MaxFixes
	if maxFixes <= 0 {
		maxFixes = defaultMaxFixes
	}
	emit := func(stage Stage, format string, args ...any) {
		if opts.OnProgress != nil {
			opts.OnProgress(stage, fmt.Sprintf(format, args...))
		}
	}

	emit(StageDetecting, "scanning %d files", len(files))
	defects := scanner.Scan(files)

	ordered := make([]defect.Defect, len(defects))
	copy(ordered, defects)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity.Rank() < ordered[j].Severity.Rank()
	})
	workSet := ordered
	if len(workSet) > maxFixes {
		workSet = workSet[:maxFixes]
	}

	result := &defect.Result{Defects: defects}
	modified := make(map[string]bool)

	for _, d := range workSet {
		emit(StageAnalyzing, "analyzing %s (%s:%d)", d.ID, d.File, d.Line)
		diag := h.analyzer.Analyze(ctx, d, files)
		result.Diagnoses = append(result.Diagnoses, diag)

		emit(StageFixing, "synthesizing fix for %s", d.ID)
		fix := h.synth.Synthesize(ctx, d, diag, files)
		if fix == nil {
			continue
		}

		emit(StageValidating, "validating fix for %s", d.ID)
		ok, remaining := validator.Validate(fix, files)
		if !ok {
			emit(StageValidating, "fix for %s rejected: %d defects remain in %s",
				d.ID, len(remaining), fix.File)
			continue
		}

		fix.Validated = true
		result.Fixes = append(result.Fixes, *fix)
		modified[fix.File] = true
		h.history[fix.File] = append(h.history[fix.File], *fix)
		if opts.AutoApply {
			files[fix.File] = fix.Updated
		}
	}

	result.Summary = defect.Summary{
		Detected:      len(defects),
		Fixed:         len(result.Fixes),
		FilesModified: sortedKeys(modified),
		Elapsed:       time.Since(start),
	}
	emit(StageComplete, "healed %d of %d defects", result.Summary.Fixed, result.Summary.Detected)
	return result, nil
}

// History returns the accumulated fixes committed to path by this instance.
func (h *Healer) History(path string) []defect.Fix {
	out := make([]defect.Fix, len(h.history[path]))
	copy(out, h.history[path])
	return out
}

// Reset clears all accumulated fix history.
func (h *Healer) Reset() {
	h.history = make(map[string][]defect.Fix)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
