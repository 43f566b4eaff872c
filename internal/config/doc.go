// Package config provides configuration management for clitestbed.
//
// It covers two kinds of configuration.
//
// # Test configuration documents
//
// Test set and test case files are ordered documents: top-level sections hold
// options whose values are scalars, lists of scalars or nested sections.
// Declaration order is preserved for sections and options, and duplicate keys
// are kept, so an ARGUMENTS section can repeat an option. Files ending in
// ".json" are decoded as JSON; everything else is decoded as YAML.
//
//	{
//	  "TEST": {
//	    "DESCRIPTION": "Prints a greeting",
//	    "OUTSUBDIR": "greeting_$(datetime)",
//	    "LOGFILE": "$(outsubdir).log"
//	  },
//	  "ARGUMENTS": {
//	    "-n": "hello",
//	    "-o": "$(outdir)/$(outsubdir)/result.txt"
//	  }
//	}
//
// # Interpolation
//
// Every value read through a Reader is interpolated once against a Context.
// The tokens are resolved in this fixed order:
//
//  1. $(datetime)  - run timestamp, YYYYMMDD_HHMMSS
//  2. $(outdir)    - test set output directory
//  3. $(outsubdir) - test case output sub-directory
//
// Unknown tokens are left as they are.
//
// # Harness settings
//
// Defaults for the harness itself are layered like this:
//
//  1. Built-in defaults
//  2. User settings (~/.config/clitestbed/config.yaml)
//  3. Project settings (./.clitestbed/config.yaml)
//
// Command-line flags take precedence over all layers.
package config
