// Package transform computes the derived columns of the merged panel: the
// per-country price index and deflated investment value, the FDI dollar
// amount, the guarded log transforms and the post-threshold indicator.
//
// Each stage takes the panel and returns a new one with columns appended.
// All arithmetic is null-propagating over NaN; no stage ever substitutes a
// placeholder for a missing input.
package transform
