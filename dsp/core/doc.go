// Package core holds the numeric primitives shared by every dsp package:
// the scalar and complex types, the status taxonomy returned by fallible
// operations, the NaN/Inf boundary policy, and small numeric helpers.
package core
