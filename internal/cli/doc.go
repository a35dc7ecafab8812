// Package cli implements the dugraph command: flag and configuration handling,
// the collect-ingest-estimate pipeline, and the output printers.
package cli
