package models

import "sort"

// RunReport aggregates the per-file outcomes of one batch run.
type RunReport struct {
	// Directories are the target directories scanned, in resolution order.
	Directories []string `json:"directories"`
	// Outcomes holds one entry per attempted file, sorted by path.
	Outcomes []FileOutcome `json:"outcomes"`

	Rewritten    int `json:"rewritten"`
	WouldRewrite int `json:"would_rewrite"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
}

// NewRunReport creates an empty report for the given directories.
func NewRunReport(dirs []string) *RunReport {
	return &RunReport{
		Directories: append([]string(nil), dirs...),
	}
}

// Add records an outcome and updates the counters.
func (r *RunReport) Add(o FileOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusRewritten:
		r.Rewritten++
	case StatusWouldRewrite:
		r.WouldRewrite++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Sort orders the outcomes by path so reports are stable across runs.
func (r *RunReport) Sort() {
	sort.SliceStable(r.Outcomes, func(i, j int) bool {
		return r.Outcomes[i].Path < r.Outcomes[j].Path
	})
}

// Processed returns the number of files attempted.
func (r *RunReport) Processed() int {
	return r.Rewritten + r.WouldRewrite + r.Skipped + r.Failed
}

// Failures returns the failed outcomes in report order.
func (r *RunReport) Failures() []FileOutcome {
	var failed []FileOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
