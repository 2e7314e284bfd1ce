package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/powerlab/steamsim/internal/plant"
	"github.com/powerlab/steamsim/internal/session"
)

// Columns is the fixed CSV layout of a stored run.
var Columns = []string{
	"time",
	"steam_flow",
	"steam_pressure",
	"steam_temp",
	"turbine_speed",
	"load",
	"frequency",
	"thermal_eff",
	"drum_level",
	"co2_rate",
	"earnings",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Tripped   bool               `json:"tripped"`
	TripCause string             `json:"trip_cause"`
	Metrics   map[string]float64 `json:"metrics"`
}

func columnValue(st plant.SystemState, t float64, idx int) float64 {
	switch Columns[idx] {
	case "time":
		return t
	case "steam_flow":
		return st.MainSteamFlow
	case "steam_pressure":
		return st.MainSteamPressure
	case "steam_temp":
		return st.MainSteamTemp
	case "turbine_speed":
		return st.TurbineSpeed
	case "load":
		return st.Load
	case "frequency":
		return st.Frequency
	case "thermal_eff":
		return st.ThermalEfficiency
	case "drum_level":
		return st.DrumLevel
	case "co2_rate":
		return st.CO2Rate
	case "earnings":
		return st.TotalEarnings
	}
	return 0
}

func row(t float64, st plant.SystemState) []string {
	out := make([]string, len(Columns))
	for i := range Columns {
		out[i] = strconv.FormatFloat(columnValue(st, t, i), 'f', 6, 64)
	}
	return out
}

func (s *Store) Save(preset string, dt, duration float64, result *session.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	final := plant.SystemState{}
	if len(result.States) > 0 {
		final = result.States[len(result.States)-1]
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Tripped:   final.Tripped,
		TripCause: string(final.TripCause),
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(Columns); err != nil {
		return "", err
	}
	for i := range result.States {
		if err := w.Write(row(result.Times[i], result.States[i])); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads the stored time series back as columns minus the
// leading time column, plus the times themselves.
func (s *Store) LoadSeries(runID string) (map[string][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return map[string][]float64{}, []float64{}, nil
	}

	header := records[0]
	series := make(map[string][]float64, len(header)-1)
	times := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			series[header[j]] = append(series[header[j]], v)
		}
	}

	return series, times, nil
}
