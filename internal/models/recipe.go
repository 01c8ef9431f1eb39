package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time       `json:"pub_date"`
	UpdatedAt   time.Time       `json:"-"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Text        string          `gorm:"type:text;not null" json:"text"`
	ImageURL    string          `gorm:"size:255" json:"image"`
	CookingTime int             `gorm:"not null;check:cooking_time >= 1" json:"cooking_time"`
	Embedding   pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	AuthorID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"author_id"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient joins a recipe to an ingredient with a quantity. An
// ingredient appears at most once per recipe.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair" json:"-"`
	IngredientID uint      `gorm:"not null;uniqueIndex:idx_recipe_ingredient_pair" json:"id"`
	Amount       int       `gorm:"not null;check:amount >= 1" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeTag joins a recipe to a tag. A tag appears at most once per
// recipe.
type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_tag_pair" json:"-"`
	TagID    uint      `gorm:"not null;uniqueIndex:idx_recipe_tag_pair" json:"id"`

	Tag Tag `gorm:"foreignKey:TagID" json:"-"`
}

func (rt *RecipeTag) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
