// Package views derives display data from a basis and a trajectory.
//
// Everything here is a pure function of its inputs and is cheap enough to
// rebuild on every change: the rounded matrix, the phase-space geometry
// (eigen-direction rays, arrows, orbit points) and the per-axis time series.
package views
