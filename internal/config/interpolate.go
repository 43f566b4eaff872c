package config

import (
	"strings"
	"time"
)

// DateTimeLayout is the $(datetime) format, YYYYMMDD_HHMMSS.
const DateTimeLayout = "20060102_150405"

const (
	TokenDateTime  = "$(datetime)"
	TokenOutDir    = "$(outdir)"
	TokenOutSubdir = "$(outsubdir)"
)

// Context holds the values tokens resolve against. It is passed by value;
// the With* helpers return modified copies.
type Context struct {
	OutDir    string
	OutSubdir string
	Now       time.Time
}

// NewContext returns a root context with the timestamp captured once for the run.
func NewContext(now time.Time, outDir string) Context {
	return Context{OutDir: outDir, Now: now}
}

// WithOutDir returns a copy of c with OutDir replaced.
func (c Context) WithOutDir(dir string) Context {
	c.OutDir = dir
	return c
}

// WithOutSubdir returns a copy of c with OutSubdir replaced.
func (c Context) WithOutSubdir(dir string) Context {
	c.OutSubdir = dir
	return c
}

// Rule replaces every occurrence of Token with the value Resolve computes.
type Rule struct {
	Token   string
	Resolve func(Context) string
}

// DefaultRules are applied in this order.
var DefaultRules = []Rule{
	{Token: TokenDateTime, Resolve: func(c Context) string { return c.Now.Format(DateTimeLayout) }},
	{Token: TokenOutDir, Resolve: func(c Context) string { return c.OutDir }},
	{Token: TokenOutSubdir, Resolve: func(c Context) string { return c.OutSubdir }},
}

// Interpolator applies an ordered list of rules to configuration strings.
type Interpolator struct {
	rules []Rule
}

// NewInterpolator creates an interpolator. With no rules it uses DefaultRules.
func NewInterpolator(rules ...Rule) *Interpolator {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Interpolator{rules: rules}
}

// Interpolate runs every rule over value in priority order. Unknown tokens are
// left untouched.
func (i *Interpolator) Interpolate(value string, ctx Context) string {
	for _, r := range i.rules {
		if !strings.Contains(value, r.Token) {
			continue
		}
		value = strings.ReplaceAll(value, r.Token, r.Resolve(ctx))
	}
	return value
}

// InterpolateAll interpolates each element independently, keeping order.
func (i *Interpolator) InterpolateAll(values []string, ctx Context) []string {
	out := make([]string, len(values))
	for idx, v := range values {
		out[idx] = i.Interpolate(v, ctx)
	}
	return out
}
