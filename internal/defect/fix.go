package defect

import (
	"fmt"
	"sync/atomic"
	"time"
)

// DiffOp tags one line of a computed diff.
type DiffOp string

const (
	DiffUnchanged DiffOp = "unchanged"
	DiffRemoved   DiffOp = "removed"
	DiffAdded     DiffOp = "added"
)

// DiffLine is one entry of the line-aligned diff between the original and
// the fixed file content.
type DiffLine struct {
	Op   DiffOp `json:"op"`
	Line int    `json:"line"` // 1-based aligned line index
	Text string `json:"text"`
}

// Fix is a full-file replacement proposal for one defect. Validated starts
// false and is flipped by the orchestrator only after the validator accepts;
// an unvalidated Fix is never applied to the working file set.
type Fix struct {
	ID          string     `json:"id"`
	DefectID    string     `json:"defectId"`
	File        string     `json:"file"`
	Original    string     `json:"original"`
	Updated     string     `json:"updated"`
	Explanation string     `json:"explanation"`
	Confidence  int        `json:"confidence"` // 0-100
	Validated   bool       `json:"validated"`
	Diff        []DiffLine `json:"diff"`
}

var fixSeq atomic.Uint64

// NewFixID returns a process-unique fix identifier.
func NewFixID() string {
	return fmt.Sprintf("fix-%d-%d", time.Now().UnixMilli(), fixSeq.Add(1))
}
