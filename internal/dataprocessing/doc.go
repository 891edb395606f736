// Package dataprocessing handles the ingest half of the report pipeline:
// reading uploaded sales workbooks, validating them against the required
// schema, and aggregating records into a per-salesperson summary table.
//
// The flow is always Parse -> Validate -> Summarize. Validation is
// all-or-nothing: one malformed row rejects the whole upload, no rows are
// silently dropped. Salesperson names are compared byte-for-byte, so names
// differing only in case or surrounding whitespace form distinct groups.
package dataprocessing
