package domain

import "time"

type Category string

const (
	CategoryCasual    Category = "Casual"
	CategoryFormal    Category = "Formal"
	CategoryParty     Category = "Party"
	CategoryEthnic    Category = "Ethnic"
	CategorySleepwear Category = "Sleepwear"
)

// Categories lists every selectable style, in display order.
var Categories = []Category{
	CategoryCasual,
	CategoryFormal,
	CategoryParty,
	CategoryEthnic,
	CategorySleepwear,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type AgeGroup string

const (
	AgeGroupKids   AgeGroup = "Kids (0-10)"
	AgeGroupTeens  AgeGroup = "Teens (11-18)"
	AgeGroupYoung  AgeGroup = "Young (19-30)"
	AgeGroupAdults AgeGroup = "Adults (30+)"
)

var AgeGroups = []AgeGroup{
	AgeGroupKids,
	AgeGroupTeens,
	AgeGroupYoung,
	AgeGroupAdults,
}

func (a AgeGroup) Valid() bool {
	for _, known := range AgeGroups {
		if a == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Price is in paise, the smallest currency
// unit, so totals stay exact integer arithmetic.
type Product struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Price       int64     `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	Category    Category  `json:"category" bson:"category"`
	AgeGroup    AgeGroup  `json:"age_group" bson:"age_group"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
