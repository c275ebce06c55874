package defect

import "time"

// Summary condenses one healing run. Fixed never exceeds Detected, and
// FilesModified lists only paths touched by validated fixes.
type Summary struct {
	Detected      int           `json:"errorsDetected"`
	Fixed         int           `json:"errorsFixed"`
	FilesModified []string      `json:"filesModified"`
	Elapsed       time.Duration `json:"elapsed"`
}

// Result aggregates one orchestrator invocation: every defect found,
// every diagnosis attempted, every fix that survived validation, and the
// run summary.
type Result struct {
	Defects   []Defect    `json:"defects"`
	Diagnoses []Diagnosis `json:"diagnoses"`
	Fixes     []Fix       `json:"fixes"`
	Summary   Summary     `json:"summary"`
}
