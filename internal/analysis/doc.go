// Package analysis turns recorded runs into numbers and small plots.
//
//   - [BondTrace]: one bond's length over a run
//   - [PowerSpectrum]: magnitude spectrum of a trace, via go-dsp
//   - [DominantFrequency]: strongest non-DC frequency in Hz
//   - [AtomPath] and [PathToASCII]: where one atom went
//
// A stretching CO bond should show a clear peak:
//
//	trace := analysis.BondTrace(frames.Bonds, 0)
//	hz := analysis.DominantFrequency(trace, 60)
package analysis
