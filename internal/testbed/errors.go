package testbed

import (
	"errors"
	"fmt"
)

var (
	ErrNoTestCases = errors.New("configuration file missing test cases")
	ErrNoSections  = errors.New("no test set sections in configuration file")
	ErrNoTestSets  = errors.New("no test sets created in configuration file")
)

// ConfigError reports a configuration that is structurally empty: no
// sections, no usable test sets or no test case files.
type ConfigError struct {
	Path    string
	Section string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("configuration error in section %s of %s: %v", e.Section, e.Path, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TestCaseLoadError reports a test case file that could not be loaded.
type TestCaseLoadError struct {
	Path string
	Err  error
}

func (e *TestCaseLoadError) Error() string {
	return fmt.Sprintf("failed to load test case %s: %v", e.Path, e.Err)
}

func (e *TestCaseLoadError) Unwrap() error { return e.Err }

// TestSetLoadError reports a test set section that could not be loaded.
type TestSetLoadError struct {
	Path    string
	Section string
	Err     error
}

func (e *TestSetLoadError) Error() string {
	return fmt.Sprintf("failed to load test set %s from %s: %v", e.Section, e.Path, e.Err)
}

func (e *TestSetLoadError) Unwrap() error { return e.Err }
