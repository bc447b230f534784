// Package dataset loads, normalizes and merges the three raw panel tables:
// mobilized private investment (the anchor), the World Development
// Indicators extract and the Worldwide Governance Indicators extract.
//
// Loading is format-agnostic: spreadsheets open through excelize, delimited
// text through encoding/csv, and both land in a gota DataFrame of trimmed
// strings with the configured missing tokens already marked as missing.
// Normalization then renames source headers to canonical names, drops
// everything outside the schema and performs the single explicit
// type-coercion pass of the pipeline. Later stages never parse strings and
// never see a source header.
//
// Missing values are carried as NaN (gota NA elements) end to end. A zero is
// always a real zero, never a placeholder.
//
// The long-format governance table is pivoted to one row per country-year
// before joining. Key uniqueness is enforced on all three tables, so the
// left joins onto the investment anchor can never fan out; anchor rows
// without a match survive with missing joined values.
package dataset
