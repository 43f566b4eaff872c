// Package reporting presents run results.
//
// A Reporter is notified once when a run starts, once per finished test set
// and once with the totals. Three implementations are provided: a table
// reporter for terminals, a quiet reporter that lists only failures, and a
// JSON reporter for machines. The table reporter can also persist the
// totals as a timestamped JSON report file.
package reporting
