// Package analysis estimates the behaviour of a map from its orbit alone,
// so the estimates can be checked against the eigenvalues that built it.
//
//   - [PowerSpectrum]: magnitude spectrum of one component
//   - [DominantRotation]: turn per step read off the spectral peak
//   - [GrowthRate]: mean log growth of |p| per step
//   - [Containment]: share of the orbit inside the phase window
//
// [Sweep] runs many bases at once and reports each through [Analyze].
package analysis
