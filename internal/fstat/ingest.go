package fstat

import (
	"time"

	"go.uber.org/zap"
)

// Anomaly describes an entry whose creation time was later than its
// modification time and was corrected during ingestion.
type Anomaly struct {
	// Path is the affected file.
	Path string `json:"path" yaml:"path"`
	// Created is the reported creation time.
	Created time.Time `json:"created" yaml:"created"`
	// Modified is the reported modification time, before correction.
	Modified time.Time `json:"modified" yaml:"modified"`
}

// Ingest converts entries into records.
//
// An entry created after it was last modified cannot be trusted for its growth
// span, so its modification time is replaced by its creation time and the
// record becomes an instant one. Each such correction is logged as a warning
// on log (which may be nil) and returned in the anomaly list.
func Ingest(entries []Entry, log *zap.Logger) ([]Record, []Anomaly) {
	if log == nil {
		log = zap.NewNop()
	}

	records := make([]Record, 0, len(entries))

	var anomalies []Anomaly

	for _, entry := range entries {
		record := FromEntry(entry)

		if record.Created > record.Modified {
			log.Warn("encountered creation time later than modification time; using creation time",
				zap.String("path", entry.Path),
				zap.Time("created", entry.Created),
				zap.Time("modified", entry.Modified),
			)

			anomalies = append(anomalies, Anomaly{
				Path:     entry.Path,
				Created:  entry.Created,
				Modified: entry.Modified,
			})

			record.Modified = record.Created
		}

		records = append(records, record)
	}

	return records, anomalies
}
