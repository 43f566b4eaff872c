package config

import "fmt"

// ReadError reports a configuration file that could not be opened or parsed
// into an ordered document.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to read configuration file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
