// Package viz draws the explorer's views in the terminal.
//
//   - [Canvas]: braille pixel canvas, 2x4 sub-pixels per cell
//   - [PhasePortrait]: axes and orbit on the fixed [-10, 10] window
//   - [TimeSeriesPlot]: x and y against the step number, via asciigraph
//   - [Theme]: lipgloss palettes shared with the TUI
package viz
