// Package window generates analysis windows.
//
// Windows are symmetric (w[n] == w[N-1-n]) with unit peak unless
// WithPeriodic is given. A length-1 window of any family is [1].
package window
