package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// columnsPerRow is the expected field count of a seed row:
// Name;Mfr;Type;Calories;Protein;Fat;Sodium;Fiber;Carbo;Sugars;Potass;
// Vitamins;Shelf;Weight;Cups;Rating
const columnsPerRow = 16

// ImportResult reports what a seed run changed.
type ImportResult struct {
	Added        int
	ImageUpdated int
}

// Importer seeds the cereal table from a semicolon-delimited file.
// It runs once at startup, before the service accepts traffic, and is
// idempotent: rows whose Name already exists are skipped except to fill in
// a missing image path.
type Importer struct {
	db        *gorm.DB
	imagesDir string
}

func NewImporter(db *gorm.DB, imagesDir string) *Importer {
	return &Importer{db: db, imagesDir: imagesDir}
}

// Run processes the seed file and persists all changes in one batch.
// Malformed rows are logged and skipped; they never abort the import.
func (imp *Importer) Run(csvPath string) (ImportResult, error) {
	var result ImportResult

	data, err := os.ReadFile(csvPath)
	if err != nil {
		return result, fmt.Errorf("reading seed file: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var added []models.Cereal
	var imageFixes []*models.Cereal

	// The first two lines are headers.
	for i := 2; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		row := strings.Split(line, ";")
		if len(row) != columnsPerRow {
			slog.Warn("skipping malformed seed row", "line", i+1, "columns", len(row))
			continue
		}

		name := strings.TrimSpace(row[0])
		imagePath := utils.FindImageForName(imp.imagesDir, name)

		existing, err := imp.findByName(name)
		if err != nil {
			return result, err
		}
		if existing != nil {
			// At most one record per name; the only permitted touch-up is
			// filling a missing image path.
			if existing.ImagePath == nil && imagePath != "" {
				existing.ImagePath = &imagePath
				imageFixes = append(imageFixes, existing)
				result.ImageUpdated++
			}
			continue
		}

		cereal, err := parseRow(row)
		if err != nil {
			slog.Warn("skipping unparseable seed row", "line", i+1, "name", name, "error", err)
			continue
		}
		if imagePath != "" {
			cereal.ImagePath = &imagePath
		}
		added = append(added, *cereal)
		result.Added++
	}

	if len(added) == 0 && len(imageFixes) == 0 {
		slog.Info("seed import made no changes")
		return result, nil
	}

	err = imp.db.Transaction(func(tx *gorm.DB) error {
		if len(added) > 0 {
			if err := tx.Create(&added).Error; err != nil {
				return err
			}
		}
		for _, cereal := range imageFixes {
			if err := tx.Save(cereal).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("persisting seed batch: %w", err)
	}

	slog.Info("seed import complete", "added", result.Added, "imageUpdated", result.ImageUpdated)
	return result, nil
}

func (imp *Importer) findByName(name string) (*models.Cereal, error) {
	var cereal models.Cereal
	err := imp.db.Where("name = ?", name).First(&cereal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", name, err)
	}
	return &cereal, nil
}

// parseRow converts one well-formed seed row into a Cereal. Any field that
// fails to parse aborts the row; no partial record is produced.
func parseRow(row []string) (*models.Cereal, error) {
	cereal := &models.Cereal{
		Name: strings.TrimSpace(row[0]),
		Mfr:  strings.TrimSpace(row[1]),
		Type: strings.TrimSpace(row[2]),
	}

	intFields := []struct {
		dst *int
		idx int
		key string
	}{
		{&cereal.Calories, 3, "calories"},
		{&cereal.Protein, 4, "protein"},
		{&cereal.Fat, 5, "fat"},
		{&cereal.Sodium, 6, "sodium"},
		{&cereal.Sugars, 9, "sugars"},
		{&cereal.Potass, 10, "potass"},
		{&cereal.Vitamins, 11, "vitamins"},
		{&cereal.Shelf, 12, "shelf"},
	}
	for _, f := range intFields {
		v, err := strconv.Atoi(strings.TrimSpace(row[f.idx]))
		if err != nil {
			return nil, fmt.Errorf("parsing %s %q: %w", f.key, row[f.idx], err)
		}
		*f.dst = v
	}

	floatFields := []struct {
		dst *float64
		idx int
		key string
	}{
		{&cereal.Fiber, 7, "fiber"},
		{&cereal.Carbo, 8, "carbo"},
		{&cereal.Weight, 13, "weight"},
		{&cereal.Cups, 14, "cups"},
	}
	for _, f := range floatFields {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[f.idx]), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s %q: %w", f.key, row[f.idx], err)
		}
		*f.dst = v
	}

	rating, err := parseRating(row[15])
	if err != nil {
		return nil, fmt.Errorf("parsing rating %q: %w", row[15], err)
	}
	cereal.Rating = rating

	// Negative potassium marks a missing measurement in the source data.
	if cereal.Potass < 0 {
		cereal.Potass = 0
	}

	return cereal, nil
}

// parseRating repairs the seed file's mangled decimals and rescales the
// 0-100 rating onto 0-5. The first '.' is the true decimal point; every
// later '.' is noise ("93.704.912" means 93.704912). The repaired value is
// divided by 20 and rounded to two decimals.
func parseRating(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "."); i >= 0 {
		raw = raw[:i+1] + strings.ReplaceAll(raw[i+1:], ".", "")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return math.Round(v/20*100) / 100, nil
}
