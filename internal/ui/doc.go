// Package ui provides the small pieces of styled output used by the one-shot
// commands (init, report): status lines with ✓/✗/! symbols and a Spinner for
// waits on the endpoint.
//
// The dashboard itself draws with the monitor package; nothing here runs
// inside the Bubble Tea program.
//
// Colors are ANSI codes rendered through lipgloss, so --no-color and
// display.color: never (which switch lipgloss to the Ascii profile) apply
// here too.
package ui
