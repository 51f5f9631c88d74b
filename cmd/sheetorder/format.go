package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/models"
)

var (
	// fatih/color disables itself when stdout is not a TTY.
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// printSummary writes the per-status counts, planned changes and failed paths.
func printSummary(w io.Writer, report *models.RunReport) {
	fmt.Fprintf(w, "%d directories, %d workbooks\n", len(report.Directories), report.Processed())
	_, _ = successColor.Fprintf(w, "  rewritten:     %d\n", report.Rewritten)
	_, _ = dimColor.Fprintf(w, "  skipped:       %d\n", report.Skipped)
	if report.WouldRewrite > 0 {
		_, _ = warningColor.Fprintf(w, "  would rewrite: %d\n", report.WouldRewrite)
	}
	for _, o := range report.Outcomes {
		if o.Status == models.StatusWouldRewrite {
			fmt.Fprintf(w, "    %s: [%s] -> [%s]\n", o.Path, strings.Join(o.Before, ","), strings.Join(o.After, ","))
		}
	}

	if report.Failed == 0 {
		return
	}
	_, _ = errorColor.Fprintf(w, "  failed:        %d\n", report.Failed)
	for _, o := range report.Failures() {
		_, _ = errorColor.Fprintf(w, "    ✗ %s\n", o.Path)
		if o.Err != nil {
			_, _ = dimColor.Fprintf(w, "      %s\n", strings.TrimSpace(o.Err.Error()))
		}
	}
}
