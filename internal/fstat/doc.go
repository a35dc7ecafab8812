// Package fstat holds the per-file timestamp records that feed the timeline
// estimator, and the ingestion step that validates raw collector output.
package fstat
