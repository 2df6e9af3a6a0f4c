// Package report renders execution progress and the final summary.
//
// Console writes live status lines while tests run and a failure listing
// with diffs at the end. JSON writes the summary as a single document.
package report
