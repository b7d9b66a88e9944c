package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Banner is printed at the start of a run
const Banner = `
  ┌─┐┬ ┬┌─┐┌┬┐┌─┐┌─┐┬┬─┐
  └─┐├─┤│ │ │ ├─┘├─┤│├┬┘
  └─┘┴ ┴└─┘ ┴ ┴  ┴ ┴┴┴└─  side-by-side page captures
`

// Color functions for terminal output. fatih/color disables them
// automatically when stdout is not a terminal or NO_COLOR is set.
var (
	Cyan    = color.New(color.FgCyan).SprintFunc()
	Yellow  = color.New(color.FgYellow).SprintFunc()
	Red     = color.New(color.FgRed).SprintFunc()
	Green   = color.New(color.FgGreen).SprintFunc()
	Magenta = color.New(color.FgMagenta).SprintFunc()
	Dim     = color.New(color.Faint).SprintFunc()
)

// Output receives everything printed by this package
var Output io.Writer = color.Output

// PrintBanner prints the banner in cyan
func PrintBanner() {
	fmt.Fprint(Output, Cyan(Banner))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(Output, Red(msg+": "+fmt.Sprint(args[0])))
		return
	}
	fmt.Fprintln(Output, Red(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	fmt.Fprintln(Output, Green(msg))
}

// PrintInfo prints a label/value line
func PrintInfo(label string, value string) {
	fmt.Fprintf(Output, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(Output, Yellow(msg+": "+fmt.Sprint(args[0])))
		return
	}
	fmt.Fprintln(Output, Yellow(msg))
}

// PrintHighlight prints a message in magenta
func PrintHighlight(msg string) {
	fmt.Fprintln(Output, Magenta(msg))
}
