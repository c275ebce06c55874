package defect

// CandidateFix is one ranked remediation proposal inside a Diagnosis.
type CandidateFix struct {
	Description string `json:"description"`
	Confidence  int    `json:"confidence"` // 0-100
	Complexity  string `json:"complexity"` // low|medium|high
	Breaking    bool   `json:"breaking"`
}

// Diagnosis is the root-cause finding for one defect. A Diagnosis is always
// produced, even when the reasoning service fails; the degraded form carries
// no candidate fixes and a marker root cause.
type Diagnosis struct {
	DefectID         string         `json:"defectId"`
	RootCause        string         `json:"rootCause"`
	RelatedFiles     []string       `json:"relatedFiles"`
	AffectedFeatures []string       `json:"affectedFeatures"`
	Candidates       []CandidateFix `json:"suggestedFixes"`
	Prevention       string         `json:"prevention"`
}

// TopCandidate returns the highest-confidence candidate fix, or false when
// the diagnosis carries none (the degraded case).
func (d Diagnosis) TopCandidate() (CandidateFix, bool) {
	if len(d.Candidates) == 0 {
		return CandidateFix{}, false
	}
	best := d.Candidates[0]
	for _, c := range d.Candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}
