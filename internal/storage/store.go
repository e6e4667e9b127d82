package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/molvib/internal/experiment"
	"github.com/san-kum/molvib/internal/scene"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type EventRecord struct {
	Frame     uint64  `json:"frame"`
	Time      float64 `json:"time"`
	Kind      string  `json:"kind"`
	X         float64 `json:"x"`
	Motion    string  `json:"motion"`
	Activated bool    `json:"activated"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Species   string             `json:"species"`
	Timestamp time.Time          `json:"timestamp"`
	FPS       int                `json:"fps"`
	Frames    int                `json:"frames"`
	Atoms     int                `json:"atoms"`
	Events    []EventRecord      `json:"events"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Frames is the per-frame table of a stored run.
type Frames struct {
	Times []float64
	Atoms [][]scene.Point
	Bonds [][]float64
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", result.Scenario, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for n := 2; ; n++ {
		if _, err := os.Stat(runDir); os.IsNotExist(err) {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", result.Scenario, now.Unix(), n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  result.Scenario,
		Species:   string(result.Species),
		Timestamp: now,
		FPS:       result.FPS,
		Frames:    result.Frames,
		Metrics:   result.Metrics,
	}
	if len(result.Atoms) > 0 {
		meta.Atoms = len(result.Atoms[0])
	}
	for _, ev := range result.Events {
		meta.Events = append(meta.Events, EventRecord{
			Frame:     ev.Frame,
			Time:      ev.Time.Seconds(),
			Kind:      string(ev.Kind),
			X:         ev.X,
			Motion:    ev.Motion.String(),
			Activated: ev.Activated,
		})
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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Times) == 0 {
		return runID, nil
	}

	numBonds := 0
	if len(result.Bonds) > 0 {
		numBonds = len(result.Bonds[0])
	}
	header := []string{"time"}
	for i := 0; i < meta.Atoms; i++ {
		header = append(header, fmt.Sprintf("a%d_x", i), fmt.Sprintf("a%d_y", i))
	}
	for i := 0; i < numBonds; i++ {
		header = append(header, fmt.Sprintf("b%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, t := range result.Times {
		row := []string{formatFloat(t)}
		if i < len(result.Atoms) {
			for _, p := range result.Atoms[i] {
				row = append(row, formatFloat(p.X), formatFloat(p.Y))
			}
		}
		if i < len(result.Bonds) {
			for _, b := range result.Bonds[i] {
				row = append(row, formatFloat(b))
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, newest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
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

func (s *Store) LoadFrames(runID string) (*Frames, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	out := &Frames{}
	if len(records) < 2 {
		return out, nil
	}

	atoms, bonds := 0, 0
	for _, col := range records[0][1:] {
		switch {
		case strings.HasSuffix(col, "_x"):
			atoms++
		case strings.HasPrefix(col, "b"):
			bonds++
		}
	}

	for _, record := range records[1:] {
		if len(record) < 1+2*atoms+bonds {
			continue
		}
		vals := make([]float64, len(record))
		bad := false
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				bad = true
				break
			}
			vals[j] = v
		}
		if bad {
			continue
		}

		pts := make([]scene.Point, atoms)
		for a := range pts {
			pts[a] = scene.Pt(vals[1+2*a], vals[2+2*a])
		}
		out.Times = append(out.Times, vals[0])
		out.Atoms = append(out.Atoms, pts)
		out.Bonds = append(out.Bonds, vals[1+2*atoms:1+2*atoms+bonds])
	}

	return out, nil
}
