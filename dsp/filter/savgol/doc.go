// Package savgol implements Savitzky–Golay smoothing and differentiation.
//
// The kernel is the least-squares polynomial fit over a centred window,
// evaluated (or differentiated) at the centre. Edges are handled by one of
// the padding modes: reflect, nearest, constant (an alias of nearest) and
// wrap.
package savgol
