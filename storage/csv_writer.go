package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"gelbeseiten-scraper/models"
	"gelbeseiten-scraper/utils"
)

var csvHeader = []string{"name", "profession", "street", "postal_code", "city", "telephone", "website"}

// CSVWriter saves listings to a CSV file with the address split into
// street, postal code and city.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

func (w *CSVWriter) Path() string { return w.path }

// Write replaces the file with a header row and one row per listing.
// Creates the output directory if it does not exist.
func (w *CSVWriter) Write(listings []models.Listing) error {
	if len(listings) == 0 {
		utils.Warn("No listings to write")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	for _, l := range listings {
		if err := writer.Write(csvRow(l)); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	utils.Success("Saved %d listings → %s", len(listings), w.path)
	return nil
}

func csvRow(l models.Listing) []string {
	street, postalCode, city := ParseAddress(l.Address)
	return []string{
		l.Name,
		l.Profession,
		street,
		postalCode,
		city,
		l.Phone,
		l.Website,
	}
}
