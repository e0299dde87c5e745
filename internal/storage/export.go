package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/chaosdata/internal/experiment"
)

type ExportData struct {
	RunMetadata
	Times  []float64   `json:"times,omitempty"`
	States [][]float64 `json:"states,omitempty"`
}

// ExportJSON writes a run's metadata, and its samples when series is not
// nil, as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, series *experiment.Series) error {
	data := ExportData{RunMetadata: *meta}
	if series != nil {
		data.Times = series.Times
		data.States = series.States
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
