package storage

import (
	"encoding/json"
	"io"

	"github.com/powerlab/steamsim/internal/session"
)

type ExportData struct {
	ID      string               `json:"id"`
	Preset  string               `json:"preset"`
	Dt      float64              `json:"dt"`
	Steps   int                  `json:"steps"`
	Times   []float64            `json:"times"`
	Series  map[string][]float64 `json:"series"`
	Metrics map[string]float64   `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, series map[string][]float64, times []float64) error {
	data := ExportData{
		ID:      meta.ID,
		Preset:  meta.Preset,
		Dt:      meta.Dt,
		Steps:   len(times),
		Times:   times,
		Series:  series,
		Metrics: meta.Metrics,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportResultJSON writes a fresh in-memory result without storing it.
func ExportResultJSON(w io.Writer, preset string, dt float64, result *session.Result) error {
	series := make(map[string][]float64, len(Columns)-1)
	for idx, name := range Columns {
		if idx == 0 {
			continue
		}
		vals := make([]float64, len(result.States))
		for i := range result.States {
			vals[i] = columnValue(result.States[i], result.Times[i], idx)
		}
		series[name] = vals
	}

	data := ExportData{
		Preset:  preset,
		Dt:      dt,
		Steps:   len(result.Times),
		Times:   result.Times,
		Series:  series,
		Metrics: result.Metrics,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
