// Package govindex reduces the six governance indicators to one composite
// score per country-year via principal components on the standardized
// complete-case sample. Rows missing any indicator keep a missing score and
// are never imputed.
package govindex
