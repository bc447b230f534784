// Package report derives the published statistics from the merged panel:
// descriptive summaries, pairwise-complete correlations, flattened
// regression and Hausman tables, the per-country coverage frame behind the
// map figure, and plot-ready scatter frames. The package computes and
// renders; persistence lives in the exporter.
package report
