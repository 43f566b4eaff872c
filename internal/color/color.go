package color

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors with consistent light/dark mode support
var (
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#10B981",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2563EB",
		Dark:  "#3B82F6",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	TitleStyle   = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
)

var (
	mu       sync.RWMutex
	enabled  = os.Getenv("NO_COLOR") == ""
	detected termenv.Profile
	once     sync.Once
)

// Initialize selects the light or dark variants of the palette.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// SetEnabled turns colour output on or off. Enabling has no effect while
// NO_COLOR is set.
func SetEnabled(on bool) {
	once.Do(func() { detected = lipgloss.ColorProfile() })

	mu.Lock()
	defer mu.Unlock()
	enabled = on && os.Getenv("NO_COLOR") == ""
	if enabled {
		lipgloss.SetColorProfile(detected)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Enabled reports whether colour output is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func render(style lipgloss.Style, s string) string {
	if !Enabled() {
		return s
	}
	return style.Render(s)
}

// Status styles a result status word: green for a pass, red for a failure,
// amber for missing or aborted cases.
func Status(s string) string {
	switch strings.ToUpper(s) {
	case "PASSED", "PASS", "OK":
		return render(SuccessStyle, s)
	case "FAILED", "FAIL":
		return render(ErrorStyle, s)
	case "MISSING", "ERROR", "SKIPPED":
		return render(WarningStyle, s)
	default:
		return s
	}
}

// Title styles a heading.
func Title(s string) string { return render(TitleStyle, s) }

// Muted de-emphasizes s.
func Muted(s string) string { return render(MutedStyle, s) }
