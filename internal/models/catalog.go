package models

import "time"

// Tag is reference data shared across all recipes. Name, color and slug
// are each globally unique.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug      string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

// Ingredient is reference data; the same name may appear with different
// measurement units, so uniqueness is on the (name, unit) pair.
type Ingredient struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
	Name            string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:30;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
