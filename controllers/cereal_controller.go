package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// CerealController maps the /api/cereal endpoints onto the cereal service.
type CerealController struct {
	cereals         *services.CerealService
	placeholderPath string
}

func NewCerealController(cereals *services.CerealService, placeholderPath string) *CerealController {
	return &CerealController{cereals: cereals, placeholderPath: placeholderPath}
}

// GetAll handles GET /api/cereal with optional filter and sort parameters,
// e.g. /api/cereal?Mfr=K&CaloriesMin=70&CaloriesMax=120&sortBy=name
func (ctl *CerealController) GetAll(c *gin.Context) {
	var params models.CerealQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	cereals, err := ctl.cereals.List(params)
	if err != nil {
		slog.Error("error retrieving cereals", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	if len(cereals) == 0 {
		slog.Warn("no cereals found matching the filters provided")
		// Always 200, even when empty.
		c.JSON(http.StatusOK, []models.Cereal{})
		return
	}

	slog.Info("retrieved cereals", "count", len(cereals))
	c.JSON(http.StatusOK, cereals)
}

// GetByID handles GET /api/cereal/:id
func (ctl *CerealController) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cereal, err := ctl.cereals.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Cereal with ID %d not found.", id)})
			return
		}
		slog.Error("error retrieving cereal", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, cereal)
}

// Create handles POST /api/cereal. An id of 0 inserts a new record; a
// non-zero id must reference an existing record, which is overwritten.
// Ids can never be chosen manually for creation.
func (ctl *CerealController) Create(c *gin.Context) {
	var incoming models.Cereal
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cereal data is invalid."})
		return
	}

	if incoming.ID == 0 {
		if err := ctl.cereals.Create(&incoming); err != nil {
			slog.Error("error creating cereal", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
			return
		}
		slog.Info("cereal created", "id", incoming.ID)
		c.Header("Location", fmt.Sprintf("/api/cereal/%d", incoming.ID))
		c.JSON(http.StatusCreated, incoming)
		return
	}

	existing, err := ctl.cereals.Get(incoming.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Cereal with ID %d does not exist. ID cannot be chosen manually for creation.", incoming.ID),
			})
			return
		}
		slog.Error("error looking up cereal for update", "id", incoming.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	overwrite(existing, &incoming)
	if err := ctl.cereals.Update(existing); err != nil {
		slog.Error("error updating cereal", "id", existing.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	slog.Info("cereal updated", "id", existing.ID)
	c.JSON(http.StatusOK, existing)
}

// Update handles PUT /api/cereal/:id. The path id and payload id must match.
func (ctl *CerealController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var incoming models.Cereal
	if err := c.ShouldBindJSON(&incoming); err != nil || id != incoming.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cereal data is invalid or ID mismatch."})
		return
	}

	existing, err := ctl.cereals.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Cereal with ID %d not found.", id)})
			return
		}
		slog.Error("error looking up cereal for update", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	overwrite(existing, &incoming)
	if err := ctl.cereals.Update(existing); err != nil {
		slog.Error("error updating cereal", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	slog.Info("cereal updated", "id", id)
	c.JSON(http.StatusOK, existing)
}

// Delete handles DELETE /api/cereal/:id
func (ctl *CerealController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := ctl.cereals.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Cereal with ID %d not found.", id)})
			return
		}
		slog.Error("error deleting cereal", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	slog.Info("cereal deleted", "id", id)
	c.Status(http.StatusNoContent)
}

// DeleteAll handles DELETE /api/cereal/all
func (ctl *CerealController) DeleteAll(c *gin.Context) {
	count, err := ctl.cereals.DeleteAll()
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No cereals found in the database."})
			return
		}
		slog.Error("error deleting all cereals", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	slog.Info("all cereals deleted", "count", count)
	c.Status(http.StatusNoContent)
}

// GetImage handles GET /api/cereal/:id/image. It serves the record's image
// if one resolves on disk, falls back to the placeholder, and 404s when
// neither exists.
func (ctl *CerealController) GetImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cereal, err := ctl.cereals.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Cereal with ID %d not found.", id)})
			return
		}
		slog.Error("error retrieving cereal for image", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	imagePath := ""
	if cereal.ImagePath != nil && *cereal.ImagePath != "" {
		imagePath = utils.FindExistingImage(*cereal.ImagePath)
	}
	if imagePath == "" {
		imagePath = utils.FindExistingImage(ctl.placeholderPath)
	}
	if imagePath == "" {
		slog.Warn("no image found for cereal", "id", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found."})
		return
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		slog.Error("error reading image file", "path", imagePath, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.Data(http.StatusOK, utils.MimeTypeFor(imagePath), data)
}

// pathID parses the :id path segment, replying 400 on garbage.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// overwrite replaces every mutable field of dst with src's values. The id
// is immutable once persisted.
func overwrite(dst, src *models.Cereal) {
	dst.Name = src.Name
	dst.Mfr = src.Mfr
	dst.Type = src.Type
	dst.Calories = src.Calories
	dst.Protein = src.Protein
	dst.Fat = src.Fat
	dst.Sodium = src.Sodium
	dst.Fiber = src.Fiber
	dst.Carbo = src.Carbo
	dst.Sugars = src.Sugars
	dst.Potass = src.Potass
	dst.Vitamins = src.Vitamins
	dst.Shelf = src.Shelf
	dst.Weight = src.Weight
	dst.Cups = src.Cups
	dst.Rating = src.Rating
	dst.ImagePath = src.ImagePath
}
