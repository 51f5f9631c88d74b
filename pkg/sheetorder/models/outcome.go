package models

// Status is the terminal state of one file in a run.
type Status string

const (
	// StatusRewritten means the workbook was reordered and saved.
	StatusRewritten Status = "rewritten"
	// StatusWouldRewrite means the workbook needs reordering but the run was a dry run.
	StatusWouldRewrite Status = "would_rewrite"
	// StatusSkipped means the workbook was left untouched.
	StatusSkipped Status = "skipped"
	// StatusFailed means opening, planning or saving the workbook failed.
	StatusFailed Status = "failed"
)

// FileOutcome records what happened to a single file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string `json:"path"`
	// Status is the terminal state.
	Status Status `json:"status"`
	// Reason is set for skipped files.
	Reason SkipReason `json:"reason,omitempty"`
	// Before is the sheet order read from the file (nil if it could not be read).
	Before []string `json:"before,omitempty"`
	// After is the planned sheet order for rewritten files.
	After []string `json:"after,omitempty"`
	// Err holds the failure cause for failed files.
	Err error `json:"-"`
}
