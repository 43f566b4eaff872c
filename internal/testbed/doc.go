// Package testbed holds the entity hierarchy of a run: a TestSet owns an
// executable, an output directory and an ordered list of TestCase slots, and
// each TestCase owns an ordered list of Arguments.
//
// Cases run strictly one at a time. Each attempt produces an ExecutionResult
// whose Outcome distinguishes a process that exited (with its code) from one
// whose log file could not be created or that could not be launched. A slot
// passes only when it exited with the set's success code.
package testbed
