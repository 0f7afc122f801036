// Package fpenv controls the flush-to-zero (FTZ) and denormals-are-zero
// (DAZ) modes of the floating-point unit.
//
// The modes are per OS thread. A goroutine that wants them must stay on
// its thread while they are active, either by calling runtime.LockOSThread
// around Enable/Restore or by using Do, which does both.
//
// On architectures without a supported control register every call is a
// no-op and Supported reports false.
package fpenv
