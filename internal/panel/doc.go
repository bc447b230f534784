// Package panel estimates the regression specifications on the merged
// country-year panel.
//
// Each specification is fit twice: a two-way within estimator absorbing
// country and year effects, and a Swamy-Arora random-effects estimator
// with year dummies. A Hausman test compares the shared structural slopes
// and records which estimator the data prefer. Every specification builds
// its own complete-case sample, so thin specifications fail with
// InsufficientDataError while the rest of the model set still runs.
package panel
