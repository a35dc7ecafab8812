package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/idelchi/dugraph/internal/bytefmt"
	"github.com/idelchi/dugraph/internal/chart"
	"github.com/idelchi/dugraph/internal/collect"
	"github.com/idelchi/dugraph/internal/fstat"
	"github.com/idelchi/dugraph/internal/timeline"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// ReportSample is a timeline sample as printed.
type ReportSample struct {
	// Time is the timestamp in seconds since the epoch.
	Time float64 `json:"time" yaml:"time"`
	// Timestamp is Time as a date.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Bytes is the cumulative size.
	Bytes int64 `json:"bytes" yaml:"bytes"`
}

// Report is the printed result of a run.
type Report struct {
	// FileCount is the number of files analyzed.
	FileCount int64 `json:"file_count" yaml:"file_count"`
	// TotalBytes is the cumulative size of all analyzed files.
	TotalBytes int64 `json:"total_bytes" yaml:"total_bytes"`
	// ErrorCount is the number of unreadable entries.
	ErrorCount int64 `json:"error_count" yaml:"error_count"`
	// Anomalies are files whose creation time was corrected.
	Anomalies []fstat.Anomaly `json:"anomalies" yaml:"anomalies"`
	// Samples is the estimated cumulative size series.
	Samples []ReportSample `json:"samples" yaml:"samples"`
	// Elapsed is the time spent walking.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	series timeline.Series
}

// NewReport assembles a Report.
func NewReport(result *collect.Result, anomalies []fstat.Anomaly, series timeline.Series) *Report {
	samples := make([]ReportSample, len(series))
	for i, s := range series {
		samples[i] = ReportSample{Time: s.At, Timestamp: s.Time().UTC(), Bytes: s.Bytes}
	}

	if anomalies == nil {
		anomalies = []fstat.Anomaly{}
	}

	return &Report{
		FileCount:  result.FileCount,
		TotalBytes: result.TotalBytes,
		ErrorCount: result.ErrorCount,
		Anomalies:  anomalies,
		Samples:    samples,
		Elapsed:    result.Elapsed,
		series:     series,
	}
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintYAML outputs the report in YAML format.
func PrintYAML(report *Report, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return encoder.Close()
}

// PrintCSV outputs the samples as CSV rows.
func PrintCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)

	if err := w.Write([]string{"timestamp", "unix", "bytes"}); err != nil {
		return err
	}

	for _, s := range report.Samples {
		row := []string{
			s.Timestamp.Format(time.RFC3339Nano),
			strconv.FormatFloat(s.Time, 'f', -1, 64),
			strconv.FormatInt(s.Bytes, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// PrintTable outputs the samples in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *Report, si bool, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)
	formatter := bytefmt.New(si)

	fmt.Fprintln(w, "\nTimeline:\t\t\t")

	for i, s := range report.Samples {
		fmt.Fprintf(w, "  %d)\t%s\t%d\t%s\n",
			i+1, s.Timestamp.Local().Format(time.RFC3339Nano), s.Bytes, formatter.Format(s.Bytes))
	}

	printSummary(w, report)

	return w.Flush()
}

// PrintChart draws the timeline followed by the summary.
func PrintChart(report *Report, options Options, writer io.Writer) error {
	renderer := chart.New(bytefmt.New(options.SI))
	renderer.Width = options.Width
	renderer.Height = options.Height

	if err := renderer.Render(writer, report.series); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	_, err := fmt.Fprintln(writer, report.FileCount, "files totalling", report.TotalBytes, "B")

	return err
}

func printSummary(w io.Writer, report *Report) {
	fmt.Fprintln(w, "\nStats:\t\t\t")
	fmt.Fprintf(w, "Total files:\t%s\t\t\n", humanize.Comma(report.FileCount))
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\t\t\n",
		humanize.IBytes(uint64(report.TotalBytes)), report.TotalBytes) //nolint:gosec // Size is never negative
	fmt.Fprintf(w, "Anomalies:\t%d\t\t\n", len(report.Anomalies))

	if report.ErrorCount > 0 {
		fmt.Fprintf(w, "Errors:\t%d\t\t\n", report.ErrorCount)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\t\t\n", report.Elapsed)
}
