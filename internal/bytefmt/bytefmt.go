// Package bytefmt formats byte counts with binary (KiB, MiB, ...) or SI
// (KB, MB, ...) magnitude prefixes for chart axes and totals.
package bytefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// tier is one magnitude step. A value below si (or binary) is displayed
// against the tier before it.
type tier struct {
	prefix string
	si     float64
	binary float64
}

//nolint:gochecknoglobals // Lookup table
var tiers = []tier{
	{prefix: "", si: 1e3, binary: 1 << 10},
	{prefix: "K", si: 1e6, binary: 1 << 20},
	{prefix: "M", si: 1e9, binary: 1 << 30},
	{prefix: "G", si: 1e12, binary: 1 << 40},
	{prefix: "T", si: 1e15, binary: 1 << 50},
	{prefix: "P", si: 1e18, binary: 1 << 60},
}

// Formatter renders byte counts as "<value> <prefix><unit>".
type Formatter struct {
	// SI selects powers of 1000 instead of powers of 1024.
	SI bool
}

// New returns a Formatter for the given prefix mode.
func New(si bool) Formatter {
	return Formatter{SI: si}
}

// Format renders n bytes.
func (f Formatter) Format(n int64) string {
	return f.FormatFloat(float64(n))
}

// FormatFloat renders a possibly fractional byte count, as used for
// interpolated chart values.
func (f Formatter) FormatFloat(x float64) string {
	if x == 0 {
		return "0 B"
	}

	if x < 0 {
		return "-" + f.FormatFloat(-x)
	}

	base := 1024.0
	if f.SI {
		base = 1000
	}

	for _, t := range tiers {
		cutoff := t.binary
		if f.SI {
			cutoff = t.si
		}

		if x >= cutoff {
			continue
		}

		value := x / (cutoff / base)

		if f.SI {
			return pyFloat(value) + " " + f.unit(t.prefix)
		}

		// Division leaves values like 1023.9999 just under a tier boundary;
		// large values are shown whole and the rest to four places.
		if value >= 1000 {
			return strconv.FormatInt(int64(value), 10) + " " + f.unit(t.prefix)
		}

		return pyFloat(math.Round(value*1e4)/1e4) + " " + f.unit(t.prefix)
	}

	last := tiers[len(tiers)-1]

	divisor := last.binary / base
	if f.SI {
		divisor = last.si / base
	}

	return fmt.Sprintf("%.3f %s", x/divisor, f.unit(last.prefix))
}

func (f Formatter) unit(prefix string) string {
	if prefix != "" && !f.SI {
		return prefix + "iB"
	}

	return prefix + "B"
}

// pyFloat prints the shortest representation of v that keeps at least one
// fractional digit, e.g. 1 -> "1.0", 1.25 -> "1.25".
func pyFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
