// Package report converts raw check findings into the canonical report shape
// consumed by dashboards and CI gates, and renders the message templates.
// The JSON shape of Report and Item is an external contract and must stay
// stable.
package report

import (
	"github.com/vk/assetcheck/internal/check"
)

// Item is one rendered finding inside a report.
type Item struct {
	Message  string `json:"message"`
	Item     string `json:"item"`
	Expected any    `json:"expected"`
	Found    any    `json:"found"`
}

// Report is the aggregated result of running one check. An executed check
// that found nothing still yields a Report with an empty items list; that is
// how "no problems found" is distinguished from "check never ran".
type Report struct {
	Message    string `json:"message"`
	Identifier string `json:"identifier"`
	MsgType    string `json:"msg_type"`
	Items      []Item `json:"items"`
}

// Passed reports whether the check found no issues.
func (r *Report) Passed() bool {
	return len(r.Items) == 0
}

// RawResult is the unrendered outcome of executing one check, in execution
// order. Err records a predicate failure (or data resolution failure); such a
// result renders as a single synthetic execution-error item so one broken
// check never hides the others.
type RawResult struct {
	ID       string
	Severity check.Severity
	Msg      string
	ItemMsg  string
	Findings []check.Finding
	Err      error
}

// Passed reports whether the raw result carries no findings and no failure.
func (r *RawResult) Passed() bool {
	return r.Err == nil && len(r.Findings) == 0
}
