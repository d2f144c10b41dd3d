package models

// Cereal is one row of the nutrition-facts table. An Id of 0 marks a record
// that has not been persisted yet; once stored the Id never changes.
type Cereal struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Mfr       string  `json:"mfr"`
	Type      string  `json:"type"` // hot/cold
	Calories  int     `json:"calories"`
	Protein   int     `json:"protein"`
	Fat       int     `json:"fat"`
	Sodium    int     `json:"sodium"`
	Fiber     float64 `json:"fiber"`
	Carbo     float64 `json:"carbo"`
	Sugars    int     `json:"sugars"`
	Potass    int     `json:"potass"`
	Vitamins  int     `json:"vitamins"`
	Shelf     int     `json:"shelf"`
	Weight    float64 `json:"weight"`
	Cups      float64 `json:"cups"`
	Rating    float64 `json:"rating"`
	ImagePath *string `json:"imagePath"`
}
