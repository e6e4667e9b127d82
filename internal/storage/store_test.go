package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/molvib/internal/experiment"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
	"github.com/san-kum/molvib/internal/scene"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Scenario: "co-stretch",
		Species:  molecule.CO,
		FPS:      60,
		Times:    []float64{0.016667, 0.033333},
		Atoms: [][]scene.Point{
			{scene.Pt(400, 300), scene.Pt(450, 300)},
			{scene.Pt(390, 300), scene.Pt(460, 300)},
		},
		Bonds: [][]float64{{50}, {70}},
		Events: []lab.Event{
			{Frame: 77, Time: 1283 * time.Millisecond, Kind: photon.IR, X: 385, Motion: molecule.Stretch, Activated: true},
		},
		Metrics: map[string]float64{"amplitude": 20},
		Frames:  2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Species != "CO" || meta.Scenario != "co-stretch" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Atoms != 2 || meta.Frames != 2 {
		t.Errorf("expected 2 atoms over 2 frames, got %d and %d", meta.Atoms, meta.Frames)
	}
	if meta.Metrics["amplitude"] != 20 {
		t.Errorf("expected amplitude 20, got %f", meta.Metrics["amplitude"])
	}
	if len(meta.Events) != 1 || meta.Events[0].Motion != "stretch" || meta.Events[0].Kind != "ir" {
		t.Errorf("unexpected events %+v", meta.Events)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames.Times) != 2 || len(frames.Atoms) != 2 || len(frames.Bonds) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames.Times))
	}
	if frames.Atoms[1][1] != scene.Pt(460, 300) {
		t.Errorf("expected oxygen at (460,300), got %v", frames.Atoms[1][1])
	}
	if frames.Bonds[1][0] != 70 {
		t.Errorf("expected bond 70, got %f", frames.Bonds[1][0])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("two saves share run id %s", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if got.Run.ID != runID || len(got.Times) != 2 || len(got.Atoms[0]) != 2 {
		t.Errorf("unexpected export %+v", got)
	}
}
