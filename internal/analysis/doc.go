// Package analysis provides light inspection tools for generated series.
//
//   - [Periodogram]: one-sided power spectrum of any length
//   - [BandPower]: power within a frequency band
//   - [Summarize]: per-component mean, variance, range and dominant frequency
//
// These exist to sanity check fixtures, not to estimate dynamical
// invariants.
package analysis
