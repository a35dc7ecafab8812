package bytefmt

import (
	"testing"
)

func TestFormat_Binary(t *testing.T) {
	f := New(false)

	tests := []struct {
		name string
		in   int64
		want string
	}{
		{name: "zero", in: 0, want: "0 B"},
		{name: "one byte", in: 1, want: "1.0 B"},
		{name: "below thousand", in: 512, want: "512.0 B"},
		{name: "truncated at 1000", in: 1000, want: "1000 B"},
		{name: "largest byte tier", in: 1023, want: "1023 B"},
		{name: "first kibi", in: 1024, want: "1.0 KiB"},
		{name: "kibi fraction", in: 1536, want: "1.5 KiB"},
		{name: "four places", in: 1234567, want: "1.1774 MiB"},
		{name: "just under mebi", in: 1<<20 - 1, want: "1023 KiB"},
		{name: "gibi", in: 3 << 30, want: "3.0 GiB"},
		{name: "tebi", in: 5 << 40, want: "5.0 TiB"},
		{name: "pebi", in: 7 << 50, want: "7.0 PiB"},
		{name: "beyond last tier", in: 1 << 61, want: "2048.000 PiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormat_SI(t *testing.T) {
	f := New(true)

	tests := []struct {
		name string
		in   int64
		want string
	}{
		{name: "zero", in: 0, want: "0 B"},
		{name: "bytes", in: 999, want: "999.0 B"},
		{name: "first kilo", in: 1000, want: "1.0 KB"},
		{name: "not binary", in: 1023, want: "1.023 KB"},
		{name: "kilo fraction", in: 1500, want: "1.5 KB"},
		{name: "no truncation", in: 999_999, want: "999.999 KB"},
		{name: "mega", in: 2_500_000, want: "2.5 MB"},
		{name: "giga", in: 4_000_000_000, want: "4.0 GB"},
		{name: "peta", in: 3_000_000_000_000_000, want: "3.0 PB"},
		{name: "beyond last tier", in: 2_000_000_000_000_000_000, want: "2000.000 PB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	f := New(false)

	if got := f.FormatFloat(-2048); got != "-2.0 KiB" {
		t.Errorf("expected %q, got %q", "-2.0 KiB", got)
	}

	if got := f.FormatFloat(0.5); got != "0.5 B" {
		t.Errorf("expected %q, got %q", "0.5 B", got)
	}
}
