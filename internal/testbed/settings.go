package testbed

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

const (
	caseLabelWidth = 15
	setLabelWidth  = 10
)

// settingLine renders "label: value" with the label right-aligned to width
// display columns.
func settingLine(label, value string, width int) string {
	return runewidth.FillLeft(label, width) + ": " + value
}

// SettingsReport returns the resolved case settings as aligned lines.
func (tc *TestCase) SettingsReport() []string {
	lines := []string{
		settingLine("TEST CASE", tc.SourceFile, caseLabelWidth),
		settingLine("DESCRIPTION", tc.Description, caseLabelWidth),
		settingLine("OUTSUBDIR", tc.OutSubdir, caseLabelWidth),
		settingLine("LOG FILE", tc.LogFile, caseLabelWidth),
	}
	for i, arg := range tc.Arguments {
		lines = append(lines, settingLine("ARGUMENT #"+strconv.Itoa(i+1), arg.String(), caseLabelWidth))
	}
	return lines
}

// SettingsReport returns the resolved set settings as aligned lines.
func (ts *TestSet) SettingsReport() []string {
	lines := []string{
		settingLine("TEST SET", ts.Name, setLabelWidth),
		settingLine("EXECUTABLE", ts.Executable, setLabelWidth),
		settingLine("OUTPUT DIR", ts.OutDir, setLabelWidth),
	}
	for i, slot := range ts.Slots {
		file := "None"
		if !slot.Absent() {
			file = slot.Case.SourceFile
		}
		lines = append(lines, settingLine("CASE #"+strconv.Itoa(i+1), file, setLabelWidth))
	}
	for _, dir := range ts.PathDirs {
		lines = append(lines, settingLine("PATHDIRS", dir, setLabelWidth))
	}
	return lines
}
