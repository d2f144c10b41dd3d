package services

import (
	"os"
	"path/filepath"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedHeader = "Name;Mfr;Type;Calories;Protein;Fat;Sodium;Fiber;Carbo;Sugars;Potass;Vitamins;Shelf;Weight;Cups;Rating\n" +
	"String;Categorical;Categorical;Int;Int;Int;Int;Float;Float;Int;Int;Int;Int;Float;Float;Float\n"

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cereal.csv")
	require.NoError(t, os.WriteFile(path, []byte(seedHeader+body), 0o644))
	return path
}

func TestImportAddsRecordsAndRepairsRating(t *testing.T) {
	db := newTestDB(t)
	imp := NewImporter(db, t.TempDir())

	path := writeSeed(t, "All-Bran with Extra Fiber;K;C;50;4;0;140;14;8;0;330;25;3;1;0.5;93.704.912\n")
	result, err := imp.Run(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.ImageUpdated)

	var cereal models.Cereal
	require.NoError(t, db.Where("name = ?", "All-Bran with Extra Fiber").First(&cereal).Error)
	// 93.704.912 repairs to 93.704912, then rescales: /20, rounded to 2dp.
	assert.InDelta(t, 4.69, cereal.Rating, 0.0001)
	assert.Equal(t, 14.0, cereal.Fiber)
	assert.Equal(t, 330, cereal.Potass)
}

func TestImportClampsNegativePotassium(t *testing.T) {
	db := newTestDB(t)
	imp := NewImporter(db, t.TempDir())

	path := writeSeed(t, "Almond Delight;R;C;110;2;2;200;1;14;8;-1;25;3;1;0.75;34.384.843\n")
	_, err := imp.Run(path)
	require.NoError(t, err)

	var cereal models.Cereal
	require.NoError(t, db.Where("name = ?", "Almond Delight").First(&cereal).Error)
	assert.Equal(t, 0, cereal.Potass)
}

func TestImportSkipsMalformedRows(t *testing.T) {
	db := newTestDB(t)
	imp := NewImporter(db, t.TempDir())

	path := writeSeed(t,
		"Broken Row;K;C;100\n"+
			"Corn Flakes;K;C;100;2;0;290;1;21;2;35;25;1;1;1;45.863.324\n"+
			"Bad Numbers;K;C;abc;2;0;290;1;21;2;35;25;1;1;1;45.863.324\n")
	result, err := imp.Run(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)

	var count int64
	require.NoError(t, db.Model(&models.Cereal{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportIsIdempotentByName(t *testing.T) {
	db := newTestDB(t)
	imp := NewImporter(db, t.TempDir())

	path := writeSeed(t,
		"Corn Flakes;K;C;100;2;0;290;1;21;2;35;25;1;1;1;45.863.324\n"+
			"Cheerios;G;C;110;6;2;290;2;17;1;105;25;1;1;1.25;50.764.999\n")

	first, err := imp.Run(path)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Added)

	second, err := imp.Run(path)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Added)

	var count int64
	require.NoError(t, db.Model(&models.Cereal{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestImportFillsMissingImagePath(t *testing.T) {
	db := newTestDB(t)
	imagesDir := t.TempDir()
	imagePath := filepath.Join(imagesDir, "Corn Flakes.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("png"), 0o644))

	// Pre-existing record without an image.
	require.NoError(t, db.Create(&models.Cereal{Name: "Corn Flakes", Mfr: "K", Type: "C", Calories: 100}).Error)

	imp := NewImporter(db, imagesDir)
	path := writeSeed(t, "Corn Flakes;K;C;100;2;0;290;1;21;2;35;25;1;1;1;45.863.324\n")
	result, err := imp.Run(path)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.ImageUpdated)

	var cereal models.Cereal
	require.NoError(t, db.Where("name = ?", "Corn Flakes").First(&cereal).Error)
	require.NotNil(t, cereal.ImagePath)
	assert.Equal(t, imagePath, *cereal.ImagePath)
}

func TestImportDoesNotOverwriteExistingImagePath(t *testing.T) {
	db := newTestDB(t)
	imagesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "Cheerios.jpg"), []byte("jpg"), 0o644))

	existing := "somewhere/else.jpg"
	require.NoError(t, db.Create(&models.Cereal{Name: "Cheerios", Mfr: "G", ImagePath: &existing}).Error)

	imp := NewImporter(db, imagesDir)
	path := writeSeed(t, "Cheerios;G;C;110;6;2;290;2;17;1;105;25;1;1;1.25;50.764.999\n")
	result, err := imp.Run(path)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ImageUpdated)

	var cereal models.Cereal
	require.NoError(t, db.Where("name = ?", "Cheerios").First(&cereal).Error)
	require.NotNil(t, cereal.ImagePath)
	assert.Equal(t, existing, *cereal.ImagePath)
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"93.704.912", 4.69}, // 93.704912 / 20 rounded to 2dp
		{"45.863.324", 2.29},
		{"50", 2.5},
		{"68.402.973", 3.42},
	}
	for _, tt := range tests {
		got, err := parseRating(tt.raw)
		require.NoError(t, err, "raw %q", tt.raw)
		assert.InDelta(t, tt.want, got, 0.0001, "raw %q", tt.raw)
	}

	_, err := parseRating("not-a-number")
	assert.Error(t, err)
}
