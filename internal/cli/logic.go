package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/idelchi/dugraph/internal/collect"
	"github.com/idelchi/dugraph/internal/fstat"
	"github.com/idelchi/dugraph/internal/logging"
	"github.com/idelchi/dugraph/internal/metrics"
	"github.com/idelchi/dugraph/internal/timeline"
)

// ErrNoFiles is returned when the collector found nothing to estimate.
var ErrNoFiles = errors.New("no work to do: no files found")

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func logic(ctx context.Context, options Options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := logging.New(logging.Config{
		Level:  logging.Level(options.Debug),
		Format: options.LogFormat,
		Writer: stderr,
	})
	if err != nil {
		return err
	}

	defer log.Sync() //nolint:errcheck // Nothing to do on sync failure

	enableProgress := (options.Output == "chart" || options.Output == "table") &&
		!options.Debug &&
		isTerminal(stderr)

	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := collect.Run(ctx, options.collectOptions(), log, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if result.FileCount == 0 {
		return fmt.Errorf("%w in %v", ErrNoFiles, options.Paths)
	}

	records, anomalies := fstat.Ingest(result.Entries, log)
	series := timeline.Estimate(records)

	log.Debug("estimated timeline",
		zap.Int("records", len(records)),
		zap.Int("anomalies", len(anomalies)),
		zap.Int("samples", len(series)),
		zap.Int64("final_bytes", series.Final()),
	)

	report := NewReport(result, anomalies, series)

	if err := printReport(options, report, stdout); err != nil {
		return err
	}

	if options.MetricsFile != "" {
		run := metrics.New()
		run.Observe(metrics.Observation{
			Files:         result.FileCount,
			Bytes:         result.TotalBytes,
			Anomalies:     len(anomalies),
			WalkErrors:    result.ErrorCount,
			Samples:       len(series),
			TimelineStart: series.Start(),
			TimelineEnd:   series.End(),
			ScanDuration:  result.Elapsed,
		})

		if err := run.WriteFile(options.MetricsFile); err != nil {
			return err
		}
	}

	return nil
}

// printReport writes report in the selected output format.
func printReport(options Options, report *Report, w io.Writer) error {
	switch options.Output {
	case "json":
		return PrintJSON(report, w)
	case "yaml":
		return PrintYAML(report, w)
	case "csv":
		return PrintCSV(report, w)
	case "table":
		return PrintTable(report, options.SI, w)
	case "chart":
		return PrintChart(report, options, w)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
