package fpenv

import (
	"runtime"

	"github.com/cwbudde/dspcore/internal/cpu"
)

// State is a snapshot of the thread's floating-point control word.
type State struct {
	word  uint32
	valid bool
}

// Supported reports whether FTZ/DAZ can be toggled on this machine.
func Supported() bool {
	f := cpu.DetectFeatures()
	return archSupported && f.FlushToZero
}

// Enabled reports whether FTZ is active on the calling thread.
func Enabled() bool {
	if !Supported() {
		return false
	}

	return readControl()&ftzMask != 0
}

// Enable turns on FTZ (and DAZ where available) for the calling thread
// and returns the previous state for Restore.
func Enable() State {
	if !Supported() {
		return State{}
	}

	prev := readControl()
	next := prev | ftzMask
	if cpu.DetectFeatures().DenormalsAreZero {
		next |= dazMask
	}

	writeControl(next)

	return State{word: prev, valid: true}
}

// Disable restores IEEE-754 gradual underflow on the calling thread and
// returns the previous state.
func Disable() State {
	if !Supported() {
		return State{}
	}

	prev := readControl()
	writeControl(prev &^ (ftzMask | dazMask))

	return State{word: prev, valid: true}
}

// Restore reinstates a state returned by Enable or Disable. A zero State
// is ignored.
func Restore(s State) {
	if !s.valid || !Supported() {
		return
	}

	writeControl(s.word)
}

// Do runs fn on a locked OS thread with FTZ/DAZ enabled and restores the
// previous mode afterwards.
func Do(fn func()) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	prev := Enable()
	defer Restore(prev)

	fn()
}
