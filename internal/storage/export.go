package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/eigenmap/internal/linmap"
)

type ExportData struct {
	RunMetadata
	Points []Point `json:"points"`
}

func exportData(meta *RunMetadata, points []linmap.Vec2) ExportData {
	data := ExportData{
		RunMetadata: *meta,
		Points:      make([]Point, len(points)),
	}
	for i, p := range points {
		data.Points[i] = Point{X: p.X, Y: p.Y}
	}
	return data
}

// ExportJSON writes a run's metadata and points as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	points, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, points))
}

// ExportJSONFile is ExportJSON into a new file at path.
func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}

// ExportCSV copies a run's trajectory.csv to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	dir, err := s.runDir(runID)
	if err != nil {
		return err
	}
	file, err := os.Open(filepath.Join(dir, trajectoryFile))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(w, file)
	return err
}
