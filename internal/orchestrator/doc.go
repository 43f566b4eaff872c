// Package orchestrator runs every test set declared in a configuration file.
//
// The orchestrator reads the file once, builds one testbed.TestSet per
// top-level section and runs the sets strictly in declaration order, one at a
// time. A section that cannot be built is logged and skipped so that its
// siblings still run; only a file with no sections, or one where no section
// could be built, is an error.
//
// # Lifecycle
//
// A run proceeds as follows:
//
//  1. Capture the run timestamp once, so every $(datetime) token of the run
//     resolves to the same value.
//  2. Load the document and build the test sets (LoadAll).
//  3. For each set: run it, close it, and hand its SetResult to the Reporter.
//  4. Hand the SuiteResult with the summed failures to the Reporter.
//
// Cancelling the context passed to RunAll kills the running child process;
// the remaining cases are still visited and fail to launch, so every set log
// is closed and the report stays complete.
package orchestrator
