// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters.
//
// [NewStableSection] and [NewStableChain] reject coefficients whose poles
// are not strictly inside the unit circle. Designs that produce a0 ≠ 1
// go through [Normalize] first.
//
// Coefficient design lives in dsp/filter/design.
package biquad
