package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gelbeseiten-scraper/models"
	"gelbeseiten-scraper/utils"
)

// jsonListing is the raw record layout of the JSON export. Absent optional
// fields are written as null.
type jsonListing struct {
	Name       string  `json:"name"`
	Profession string  `json:"profession"`
	Location   string  `json:"location"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	Rating     *string `json:"rating"`
	Reviews    *string `json:"reviews"`
	Category   *string `json:"category"`
	Website    *string `json:"website"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toJSONListing(l models.Listing) jsonListing {
	return jsonListing{
		Name:       l.Name,
		Profession: l.Profession,
		Location:   l.Location,
		Address:    nullable(l.Address),
		Phone:      nullable(l.Phone),
		Rating:     nullable(l.Rating),
		Reviews:    nullable(l.Reviews),
		Category:   nullable(l.Category),
		Website:    nullable(l.Website),
	}
}

// JSONWriter saves listings as an indented JSON array.
type JSONWriter struct {
	path string
}

func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

func (w *JSONWriter) Path() string { return w.path }

func (w *JSONWriter) Write(listings []models.Listing) error {
	records := make([]jsonListing, 0, len(listings))
	for _, l := range listings {
		records = append(records, toJSONListing(l))
	}

	if err := writeJSONFile(w.path, records); err != nil {
		return err
	}

	utils.Success("Saved %d listings → %s", len(listings), w.path)
	return nil
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json write error: %w", err)
	}
	return nil
}
