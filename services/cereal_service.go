package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"backend/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a cereal id has no matching record.
var ErrNotFound = errors.New("cereal not found")

// sortColumns maps recognized sortBy keys (lowercased) to their columns.
// Anything else falls back to id ascending.
var sortColumns = map[string]string{
	"name":     "name",
	"mfr":      "mfr",
	"type":     "type",
	"calories": "calories",
	"protein":  "protein",
	"fat":      "fat",
	"sodium":   "sodium",
	"fiber":    "fiber",
	"carbo":    "carbo",
	"sugars":   "sugars",
	"potass":   "potass",
	"vitamins": "vitamins",
	"shelf":    "shelf",
	"weight":   "weight",
	"cups":     "cups",
	"rating":   "rating",
}

// CerealService owns all reads and writes against the cereal table.
type CerealService struct {
	db *gorm.DB
}

func NewCerealService(db *gorm.DB) *CerealService {
	return &CerealService{db: db}
}

// List returns every cereal satisfying the conjunction of the supplied
// filters, ordered by the requested sort key. Absent filters impose no
// constraint; an unrecognized sort key silently orders by id ascending.
func (s *CerealService) List(params models.CerealQueryParams) ([]models.Cereal, error) {
	query := s.db.Model(&models.Cereal{})

	if params.Name != nil && strings.TrimSpace(*params.Name) != "" {
		slog.Debug("filtering cereals by name containing", "name", *params.Name)
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(*params.Name)+"%")
	}
	if params.Mfr != nil && strings.TrimSpace(*params.Mfr) != "" {
		slog.Debug("filtering cereals by manufacturer", "mfr", *params.Mfr)
		query = query.Where("LOWER(mfr) = ?", strings.ToLower(*params.Mfr))
	}
	if params.Type != nil && strings.TrimSpace(*params.Type) != "" {
		slog.Debug("filtering cereals by type", "type", *params.Type)
		query = query.Where("LOWER(type) = ?", strings.ToLower(*params.Type))
	}

	query = intRange(query, "calories", params.CaloriesMin, params.CaloriesMax)
	query = intRange(query, "protein", params.ProteinMin, params.ProteinMax)
	query = intRange(query, "fat", params.FatMin, params.FatMax)
	query = intRange(query, "sodium", params.SodiumMin, params.SodiumMax)
	query = floatRange(query, "fiber", params.FiberMin, params.FiberMax)
	query = floatRange(query, "carbo", params.CarboMin, params.CarboMax)
	query = intRange(query, "sugars", params.SugarsMin, params.SugarsMax)
	query = intRange(query, "potass", params.PotassMin, params.PotassMax)
	query = intRange(query, "vitamins", params.VitaminsMin, params.VitaminsMax)
	query = intRange(query, "shelf", params.ShelfMin, params.ShelfMax)
	query = floatRange(query, "weight", params.WeightMin, params.WeightMax)
	query = floatRange(query, "cups", params.CupsMin, params.CupsMax)
	query = floatRange(query, "rating", params.RatingMin, params.RatingMax)

	if col, ok := sortColumns[strings.ToLower(params.SortBy)]; ok {
		dir := "ASC"
		if params.SortDescending {
			dir = "DESC"
		}
		query = query.Order(col + " " + dir)
	} else {
		query = query.Order("id ASC")
	}

	var cereals []models.Cereal
	if err := query.Find(&cereals).Error; err != nil {
		return nil, fmt.Errorf("listing cereals: %w", err)
	}
	return cereals, nil
}

// Get fetches one cereal by id.
func (s *CerealService) Get(id uint) (*models.Cereal, error) {
	var cereal models.Cereal
	if err := s.db.First(&cereal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching cereal %d: %w", id, err)
	}
	return &cereal, nil
}

// Create inserts a new cereal; the store assigns its id.
func (s *CerealService) Create(cereal *models.Cereal) error {
	if err := s.db.Create(cereal).Error; err != nil {
		return fmt.Errorf("creating cereal: %w", err)
	}
	return nil
}

// Update persists every field of an existing cereal.
func (s *CerealService) Update(cereal *models.Cereal) error {
	if err := s.db.Save(cereal).Error; err != nil {
		return fmt.Errorf("updating cereal %d: %w", cereal.ID, err)
	}
	return nil
}

// Delete removes one cereal by id.
func (s *CerealService) Delete(id uint) error {
	result := s.db.Delete(&models.Cereal{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting cereal %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes the table, returning how many records were removed.
// An already-empty table yields ErrNotFound.
func (s *CerealService) DeleteAll() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&models.Cereal{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting all cereals: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected, nil
}

// FindByName looks a cereal up by its exact name.
func (s *CerealService) FindByName(name string) (*models.Cereal, error) {
	var cereal models.Cereal
	if err := s.db.Where("name = ?", name).First(&cereal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching cereal %q: %w", name, err)
	}
	return &cereal, nil
}

func intRange(query *gorm.DB, column string, min, max *int) *gorm.DB {
	if min != nil {
		query = query.Where(column+" >= ?", *min)
	}
	if max != nil {
		query = query.Where(column+" <= ?", *max)
	}
	return query
}

func floatRange(query *gorm.DB, column string, min, max *float64) *gorm.DB {
	if min != nil {
		query = query.Where(column+" >= ?", *min)
	}
	if max != nil {
		query = query.Where(column+" <= ?", *max)
	}
	return query
}
