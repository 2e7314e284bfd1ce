package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/powerlab/steamsim/internal/plant"
	"github.com/powerlab/steamsim/internal/session"
)

func sampleResult() *session.Result {
	states := make([]plant.SystemState, 0, 5)
	times := make([]float64, 0, 5)
	for i := 0; i < 5; i++ {
		st := plant.Baseline()
		st.Load = float64(i) * 100
		st.MainSteamTemp = 300 + float64(i)*50
		st.TotalEarnings = float64(i) * 1.25
		states = append(states, st)
		times = append(times, float64(i))
	}
	states[4].Tripped = true
	states[4].TripCause = plant.TripOverTemp

	return &session.Result{
		Times:  times,
		States: states,
		Metrics: map[string]float64{
			"peak_load_mw": 400,
			"trips":        1,
		},
	}
}

func TestSaveListLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := store.Save("overfire", 1.0, 5, sampleResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].ID != runID || runs[0].Preset != "overfire" {
		t.Errorf("metadata mangled: %+v", runs[0])
	}
	if !runs[0].Tripped || runs[0].TripCause != string(plant.TripOverTemp) {
		t.Errorf("trip state lost: %+v", runs[0])
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Metrics["peak_load_mw"] != 400 {
		t.Errorf("metrics lost: %v", meta.Metrics)
	}
}

func TestLoadSeriesRoundtrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	res := sampleResult()
	runID, err := store.Save("baseline", 1.0, 5, res)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	series, times, err := store.LoadSeries(runID)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if len(times) != len(res.Times) {
		t.Fatalf("got %d samples, want %d", len(times), len(res.Times))
	}
	for _, col := range Columns[1:] {
		if len(series[col]) != len(res.Times) {
			t.Fatalf("column %s: %d samples", col, len(series[col]))
		}
	}
	for i := range times {
		if math.Abs(series["load"][i]-res.States[i].Load) > 1e-6 {
			t.Errorf("sample %d: load %f, want %f", i, series["load"][i], res.States[i].Load)
		}
		if math.Abs(series["steam_temp"][i]-res.States[i].MainSteamTemp) > 1e-6 {
			t.Errorf("sample %d: temp %f, want %f", i, series["steam_temp"][i], res.States[i].MainSteamTemp)
		}
	}
}

func TestListEmptyBase(t *testing.T) {
	store := New(t.TempDir() + "/never_created")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("got %d runs", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	store.Init()
	if _, err := store.Load("no_such_run"); err == nil {
		t.Fatal("expected error")
	}
}

func TestExportJSON(t *testing.T) {
	store := New(t.TempDir())
	store.Init()

	res := sampleResult()
	runID, err := store.Save("baseline", 1.0, 5, res)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	series, times, err := store.LoadSeries(runID)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, series, times); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.ID != runID || data.Steps != 5 {
		t.Errorf("header mangled: %+v", data)
	}
	if len(data.Series["load"]) != 5 {
		t.Errorf("series lost: %v", data.Series)
	}
}

func TestExportResultJSON(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	if err := ExportResultJSON(&buf, "overfire", 1.0, res); err != nil {
		t.Fatalf("ExportResultJSON: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Preset != "overfire" || data.Steps != 5 {
		t.Errorf("header mangled: %+v", data)
	}
	if data.Series["earnings"][4] != 5 {
		t.Errorf("earnings column: %v", data.Series["earnings"])
	}
	if data.Metrics["trips"] != 1 {
		t.Errorf("metrics lost: %v", data.Metrics)
	}
}
