package storage

import (
	"fmt"
	"path/filepath"

	"gelbeseiten-scraper/models"
	"gelbeseiten-scraper/utils"
)

// FileExporter writes <profession>_<location>.csv and .json into Dir for
// every profession it is handed.
type FileExporter struct {
	Dir      string
	Location string
}

func NewFileExporter(dir, location string) *FileExporter {
	return &FileExporter{Dir: dir, Location: location}
}

func (e *FileExporter) Name() string { return "files" }

func (e *FileExporter) basePath(profession string) string {
	return filepath.Join(e.Dir, utils.SafeName(profession)+"_"+utils.SafeName(e.Location))
}

func (e *FileExporter) Save(profession string, listings []models.Listing) error {
	base := e.basePath(profession)

	if err := NewCSVWriter(base + ".csv").Write(listings); err != nil {
		return fmt.Errorf("save csv for %q: %w", profession, err)
	}
	if err := NewJSONWriter(base + ".json").Write(listings); err != nil {
		return fmt.Errorf("save json for %q: %w", profession, err)
	}
	return nil
}

// WriteMetrics stores the run metrics as metrics_<location>.json in dir and
// returns the file path.
func WriteMetrics(dir string, m *models.RunMetrics) (string, error) {
	path := filepath.Join(dir, "metrics_"+utils.SafeName(m.Location)+".json")
	if err := writeJSONFile(path, m); err != nil {
		return "", fmt.Errorf("save metrics: %w", err)
	}
	return path, nil
}
