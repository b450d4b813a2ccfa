// Package linmap rebuilds the system matrix of a 2x2 discrete-time linear map
// x_{t+1} = A x_t from a user-chosen eigenstructure.
//
// Two bases are supported:
//
//   - [RealBasis]: two real eigenvalues and a real eigenvector matrix,
//     A = V·diag(λ1, λ2)·V⁻¹.
//   - [ComplexBasis]: one complex eigenvalue σ+iτ and one complex
//     eigenvector α+iβ; the conjugates are implied and
//     A = Re(V·diag(λ, λ̄)·V⁻¹).
//
// A is recomputed from scratch on every call to Matrix. When the eigenvector
// columns are parallel (or one of them is zero) no matrix exists and the
// returned error matches [ErrSingularBasis].
//
// # Example
//
//	b := linmap.RealBasis{Lambda1: 0.9, Lambda2: -0.95, V: [2][2]float64{{1, 0.45}, {0.2, 1}}}
//	a, err := b.Matrix()
//	if errors.Is(err, linmap.ErrSingularBasis) {
//		// render a placeholder instead of A
//	}
//	next := a.Apply(linmap.Vec2{X: 9, Y: 7})
package linmap
