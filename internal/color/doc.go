// Package color provides the terminal styles used by the clitestbed
// reporters.
//
// Colors are adaptive: each has a light and a dark variant and lipgloss picks
// one based on the background set by Initialize. Colour output is turned off
// entirely when NO_COLOR is set or when SetEnabled(false) is called, in which
// case every helper returns its input unchanged.
//
// # Usage Example
//
//	color.Initialize(true)
//	fmt.Println(color.Status("PASSED"))
//	fmt.Println(color.Title("Test set: smoke"))
package color
