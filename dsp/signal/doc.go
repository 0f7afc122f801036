// Package signal generates deterministic test signals (sines, multisines,
// seeded noise, impulses and sweeps) and offers a few buffer utilities.
package signal
