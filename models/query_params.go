package models

// CerealQueryParams collects the optional filters understood by the list
// endpoint. Nil means "no constraint". Name is a case-insensitive substring
// match; Mfr and Type are case-insensitive exact matches; every numeric
// attribute gets an inclusive Min/Max pair.
//
// Example usage: ?Name=Bran, ?Mfr=K&CaloriesMin=70&CaloriesMax=120
type CerealQueryParams struct {
	Name *string `form:"Name"`
	Mfr  *string `form:"Mfr"`
	Type *string `form:"Type"`

	CaloriesMin *int `form:"CaloriesMin"`
	CaloriesMax *int `form:"CaloriesMax"`

	ProteinMin *int `form:"ProteinMin"`
	ProteinMax *int `form:"ProteinMax"`

	FatMin *int `form:"FatMin"`
	FatMax *int `form:"FatMax"`

	SodiumMin *int `form:"SodiumMin"`
	SodiumMax *int `form:"SodiumMax"`

	FiberMin *float64 `form:"FiberMin"`
	FiberMax *float64 `form:"FiberMax"`

	CarboMin *float64 `form:"CarboMin"`
	CarboMax *float64 `form:"CarboMax"`

	SugarsMin *int `form:"SugarsMin"`
	SugarsMax *int `form:"SugarsMax"`

	PotassMin *int `form:"PotassMin"`
	PotassMax *int `form:"PotassMax"`

	VitaminsMin *int `form:"VitaminsMin"`
	VitaminsMax *int `form:"VitaminsMax"`

	ShelfMin *int `form:"ShelfMin"`
	ShelfMax *int `form:"ShelfMax"`

	WeightMin *float64 `form:"WeightMin"`
	WeightMax *float64 `form:"WeightMax"`

	CupsMin *float64 `form:"CupsMin"`
	CupsMax *float64 `form:"CupsMax"`

	RatingMin *float64 `form:"RatingMin"`
	RatingMax *float64 `form:"RatingMax"`

	SortBy         string `form:"sortBy"`
	SortDescending bool   `form:"sortDescending"`
}
