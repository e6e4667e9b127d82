package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/molvib/internal/scene"
)

type ExportData struct {
	Run   RunMetadata     `json:"run"`
	Times []float64       `json:"times"`
	Atoms [][]scene.Point `json:"atoms"`
	Bonds [][]float64     `json:"bonds"`
}

// ExportJSON writes one stored run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		Run:   *meta,
		Times: frames.Times,
		Atoms: frames.Atoms,
		Bonds: frames.Bonds,
	})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
