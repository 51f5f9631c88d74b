// Package models defines data structures shared by the sheet ordering components.
package models

// SkipReason explains why a workbook does not need to be rewritten.
type SkipReason string

const (
	// ReasonSingleSheet marks workbooks holding exactly one sheet.
	ReasonSingleSheet SkipReason = "single_sheet"
	// ReasonNoRankedSheets marks workbooks with no sheet present in the order list.
	ReasonNoRankedSheets SkipReason = "no_ranked_sheets"
	// ReasonAlreadyOrdered marks workbooks whose sheets are already in target order.
	ReasonAlreadyOrdered SkipReason = "already_ordered"
)

// ReorderPlan is the target sheet sequence computed for one workbook.
type ReorderPlan struct {
	// TargetOrder is the left-to-right sheet sequence the workbook should have.
	TargetOrder []string `json:"target_order"`
	// Changed reports whether TargetOrder differs from the current sequence.
	Changed bool `json:"changed"`
	// Reason is set when Changed is false.
	Reason SkipReason `json:"reason,omitempty"`
}
