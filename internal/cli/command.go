package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/dugraph/internal/chart"
	"github.com/idelchi/dugraph/internal/collect"
	"github.com/idelchi/dugraph/internal/logging"
)

// EnvPrefix prefixes environment variables that override flag defaults.
const EnvPrefix = "DUGRAPH"

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// DefaultExcludes contains the default exclusion patterns.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{`.*\.git/.*`, `.*node_modules/.*`}

// Outputs lists the accepted output formats.
//
//nolint:gochecknoglobals // Config constant
var Outputs = []string{"chart", "table", "json", "yaml", "csv"}

// Options holds the resolved command configuration.
type Options struct {
	// Paths are the directories to analyze.
	Paths []string `mapstructure:"paths"`
	// Recursive includes subdirectories.
	Recursive bool `mapstructure:"recursive"`
	// SI prints sizes in powers of 1000 instead of 1024.
	SI bool `mapstructure:"si"`
	// Depth is the maximum traversal depth when recursive (0=unlimited).
	Depth int `mapstructure:"depth"`
	// Excludes contains regex patterns to exclude.
	Excludes []string `mapstructure:"exclude"`
	// Extensions to include; '!' prefix excludes.
	Extensions []string `mapstructure:"ext"`
	// MinSize is the minimum file size, e.g. "1KB".
	MinSize string `mapstructure:"min-size"`
	// TimeSource selects the creation time source.
	TimeSource string `mapstructure:"time-source"`
	// Output is the output format.
	Output string `mapstructure:"output"`
	// Width is the chart width in columns.
	Width int `mapstructure:"width"`
	// Height is the chart height in rows.
	Height int `mapstructure:"height"`
	// MetricsFile receives Prometheus metrics when set.
	MetricsFile string `mapstructure:"metrics-file"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
	// LogFormat is the log encoding.
	LogFormat string `mapstructure:"log-format"`
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var configFile string

	v := viper.New()

	cmd := &cobra.Command{
		Use:   "dugraph [flags] [path...]",
		Short: "Graph directory disk usage over time using file timestamps",
		Long: heredoc.Doc(`
			dugraph estimates how the total size of one or more directories grew over time.

			Every file is assumed to grow linearly from zero bytes at its creation time
			to its current size at its last modification time. Files without a known
			creation time appear instantly at their modification time.

			Positional Arguments:
			  path                   Directories to analyze. Defaults to the current directory.

			Configuration is read from flags, then DUGRAPH_* environment variables
			(e.g. DUGRAPH_MIN_SIZE), then the YAML file given by --config.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := loadOptions(v, cmd.Flags(), configFile, args)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.BoolP("recursive", "R", false, "Include subdirectories recursively")
	flags.Bool("si", false, "Print sizes in powers of 1000 instead of 1024")
	flags.IntP("depth", "d", 0, "Maximum traversal depth with --recursive (0=unlimited)")
	flags.StringSliceP("exclude", "e", DefaultExcludes, "Regex patterns to exclude")
	flags.StringSliceP(
		"ext",
		"x",
		[]string{},
		"File suffixes to include (e.g., .go,.md). Use '!' prefix to exclude (e.g., !.log,!_test.go)",
	)
	flags.String("min-size", "0B", "Minimum file size (e.g., 1KB)")
	flags.String("time-source", string(collect.TimeSourceBirth),
		"Creation time source: birth (falls back to mtime) or mtime")
	flags.StringP("output", "o", "chart", "Output format: "+strings.Join(Outputs, ", "))
	flags.Int("width", chart.DefaultWidth, "Chart width in columns")
	flags.Int("height", chart.DefaultHeight, "Chart height in rows")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file")
	flags.Bool("debug", false, "Enable debug output")
	flags.String("log-format", "console", "Log format: "+strings.Join(logging.Formats, ", "))
	flags.StringVar(&configFile, "config", "", "YAML configuration file")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// loadOptions merges flags, environment and config file into Options.
func loadOptions(v *viper.Viper, flags *pflag.FlagSet, configFile string, args []string) (Options, error) {
	var options Options

	if err := v.BindPFlags(flags); err != nil {
		return options, fmt.Errorf("binding flags: %w", err)
	}

	v.SetDefault("paths", []string{})
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return options, fmt.Errorf("reading config %q: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(&options); err != nil {
		return options, fmt.Errorf("decoding configuration: %w", err)
	}

	if len(args) > 0 {
		options.Paths = args
	}

	if len(options.Paths) == 0 {
		options.Paths = []string{"."}
	}

	return options, options.validate()
}

func (o Options) validate() error {
	if !slices.Contains(Outputs, o.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", o.Output, Outputs)
	}

	if !slices.Contains(collect.TimeSources, collect.TimeSource(o.TimeSource)) {
		return fmt.Errorf("invalid time source %q: must be one of %v", o.TimeSource, collect.TimeSources)
	}

	if o.Depth < 0 {
		return errors.New("depth cannot be negative")
	}

	if o.Width <= 0 || o.Height <= 0 {
		return errors.New("chart width and height must be positive")
	}

	if _, err := o.minSizeBytes(); err != nil {
		return err
	}

	return nil
}

// minSizeBytes parses MinSize into bytes.
func (o Options) minSizeBytes() (int64, error) {
	if o.MinSize == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(o.MinSize)
	if err != nil {
		return 0, fmt.Errorf("invalid min-size: %w", err)
	}

	return int64(size), nil //nolint:gosec // Size conversion from humanize is safe
}

// collectOptions converts Options for the collector.
func (o Options) collectOptions() collect.Options {
	minSize, _ := o.minSizeBytes()

	return collect.Options{
		Paths:      o.Paths,
		Recursive:  o.Recursive,
		Depth:      o.Depth,
		Extensions: o.Extensions,
		Excludes:   o.Excludes,
		MinSize:    minSize,
		TimeSource: collect.TimeSource(o.TimeSource),
	}
}
