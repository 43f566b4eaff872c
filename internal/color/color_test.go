package color

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		isDarkMode bool
		expected   bool
	}{
		{"set dark mode", true, true},
		{"set light mode", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.isDarkMode)
			if lipgloss.HasDarkBackground() != tt.expected {
				t.Errorf("lipgloss.HasDarkBackground() got %v, want %v after Initialize(%v)", lipgloss.HasDarkBackground(), tt.expected, tt.isDarkMode)
			}
		})
	}
}

func TestStatus_Disabled(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	assert.False(t, Enabled())
	for _, s := range []string{"PASSED", "FAILED", "MISSING", "ERROR", "whatever"} {
		assert.Equal(t, s, Status(s))
	}
	assert.Equal(t, "heading", Title("heading"))
	assert.Equal(t, "quiet", Muted("quiet"))
}

func TestStatus_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(true) })

	assert.False(t, Enabled())
	assert.Equal(t, "PASSED", Status("PASSED"))
}

func TestStatus_UnknownIsPlain(t *testing.T) {
	SetEnabled(true)
	assert.Equal(t, "RUNNING", Status("RUNNING"))
}
