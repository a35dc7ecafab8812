package fstat

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIngest_CorrectsCreationAfterModification(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	entries := []Entry{
		{Path: "a.txt", Size: 10, Created: time.Unix(100, 0), Modified: time.Unix(50, 0)},
		{Path: "b.txt", Size: 20, Created: time.Unix(10, 0), Modified: time.Unix(20, 0)},
	}

	records, anomalies := Ingest(entries, zap.New(core))

	t.Run("corrected record is instant", func(t *testing.T) {
		want := Record{Size: 10, Created: 100, Modified: 100}
		if records[0] != want {
			t.Errorf("expected %+v, got %+v", want, records[0])
		}
		if !records[0].Instant() {
			t.Error("expected corrected record to be instant")
		}
	})

	t.Run("valid record untouched", func(t *testing.T) {
		want := Record{Size: 20, Created: 10, Modified: 20}
		if records[1] != want {
			t.Errorf("expected %+v, got %+v", want, records[1])
		}
	})

	t.Run("anomaly returned", func(t *testing.T) {
		if len(anomalies) != 1 {
			t.Fatalf("expected 1 anomaly, got %d", len(anomalies))
		}
		if anomalies[0].Path != "a.txt" {
			t.Errorf("expected anomaly for a.txt, got %s", anomalies[0].Path)
		}
		if !anomalies[0].Modified.Equal(time.Unix(50, 0)) {
			t.Errorf("expected original modification time to be kept, got %v", anomalies[0].Modified)
		}
	})

	t.Run("warning logged", func(t *testing.T) {
		if logs.Len() != 1 {
			t.Fatalf("expected 1 warning, got %d", logs.Len())
		}
		fields := logs.All()[0].ContextMap()
		if fields["path"] != "a.txt" {
			t.Errorf("expected path field a.txt, got %v", fields["path"])
		}
		if _, ok := fields["created"]; !ok {
			t.Error("expected created field")
		}
		if _, ok := fields["modified"]; !ok {
			t.Error("expected modified field")
		}
	})
}

func TestIngest_NilLoggerAndEmptyInput(t *testing.T) {
	records, anomalies := Ingest(nil, nil)
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if len(anomalies) != 0 {
		t.Errorf("expected no anomalies, got %d", len(anomalies))
	}

	records, anomalies = Ingest([]Entry{
		{Path: "x", Size: 1, Created: time.Unix(5, 0), Modified: time.Unix(1, 0)},
	}, nil)
	if len(records) != 1 || len(anomalies) != 1 {
		t.Errorf("expected 1 record and 1 anomaly, got %d and %d", len(records), len(anomalies))
	}
}

func TestSecondsRoundTrip(t *testing.T) {
	ts := time.Unix(1700000000, 250_000_000)

	s := Seconds(ts)
	if s != 1700000000.25 {
		t.Errorf("expected 1700000000.25, got %f", s)
	}

	back := Time(s)
	if diff := back.Sub(ts); diff < -time.Microsecond || diff > time.Microsecond {
		t.Errorf("expected round trip within 1µs, got %v", diff)
	}
}

func TestRecordRate(t *testing.T) {
	r := Record{Size: 100, Created: 0, Modified: 10}
	if r.Instant() {
		t.Fatal("expected non-instant record")
	}
	if r.Rate() != 10 {
		t.Errorf("expected rate 10, got %f", r.Rate())
	}
}
