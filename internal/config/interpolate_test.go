package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testContext() Context {
	now := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)
	return NewContext(now, "/out").WithOutSubdir("sub")
}

func TestInterpolate(t *testing.T) {
	interp := NewInterpolator()
	ctx := testContext()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no tokens", "plain value", "plain value"},
		{"empty", "", ""},
		{"datetime", "run_$(datetime)", "run_20240305_070809"},
		{"outdir", "$(outdir)/x", "/out/x"},
		{"outsubdir", "$(outsubdir).log", "sub.log"},
		{"every occurrence", "$(outdir):$(outdir):$(outdir)", "/out:/out:/out"},
		{"all tokens", "$(outdir)/$(outsubdir)/$(datetime)", "/out/sub/20240305_070809"},
		{"unknown token passes through", "$(home)/$(outdir)", "$(home)//out"},
		{"partial token untouched", "$(outdir", "$(outdir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interp.Interpolate(tt.input, ctx))
		})
	}
}

func TestInterpolate_RulesApplyInOrder(t *testing.T) {
	// An outdir containing the outsubdir token is resolved by the later rule.
	ctx := NewContext(time.Now(), "/base/$(outsubdir)").WithOutSubdir("leaf")
	assert.Equal(t, "/base/leaf/file", NewInterpolator().Interpolate("$(outdir)/file", ctx))

	// The reverse is not true: outdir is already applied when outsubdir expands.
	ctx = NewContext(time.Now(), "/base").WithOutSubdir("$(outdir)")
	assert.Equal(t, "$(outdir)", NewInterpolator().Interpolate("$(outsubdir)", ctx))
}

func TestInterpolate_CustomRules(t *testing.T) {
	interp := NewInterpolator(Rule{Token: "@", Resolve: func(c Context) string { return c.OutDir }})
	ctx := NewContext(time.Now(), "X")

	assert.Equal(t, "X-X", interp.Interpolate("@-@", ctx))
	assert.Equal(t, "$(outdir)", interp.Interpolate("$(outdir)", ctx))
}

func TestInterpolateAll(t *testing.T) {
	interp := NewInterpolator()
	in := []string{"$(outdir)/a", "b", "$(outsubdir)"}

	out := interp.InterpolateAll(in, testContext())
	assert.Equal(t, []string{"/out/a", "b", "sub"}, out)
	// The input slice is not modified.
	assert.Equal(t, "$(outdir)/a", in[0])
}

func TestContext_WithHelpersCopy(t *testing.T) {
	base := NewContext(time.Now(), "/a")
	derived := base.WithOutDir("/b").WithOutSubdir("s")

	assert.Equal(t, "/a", base.OutDir)
	assert.Equal(t, "", base.OutSubdir)
	assert.Equal(t, "/b", derived.OutDir)
	assert.Equal(t, "s", derived.OutSubdir)
	assert.Equal(t, base.Now, derived.Now)
}
