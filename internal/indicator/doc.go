// Package indicator implements the technical-analysis function library.
//
// Every function is a pure transform over float64 slices in time-ascending
// order. The warm-up convention is uniform across the package: output arrays
// omit the warm-up region, so out[len(out)-1] always corresponds to
// in[len(in)-1]. Recursive indicators (EMA family, RSI, ATR, KAMA) are
// computed as a fold over the full input; there is no incremental
// update-one-point API because partial recomputation of a recurrence
// diverges from the full fold.
package indicator
