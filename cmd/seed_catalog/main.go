package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/mealbook/backend/config"
	"github.com/mealbook/backend/internal/database"
	"github.com/mealbook/backend/internal/models"
)

// Loads tag and ingredient reference data into the catalog. The
// ingredients file is a JSON array of {"name", "measurement_unit"}
// objects; tags ship as a built-in starter set.
var defaultTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	{Name: "Dessert", Color: "#F9A62B", Slug: "dessert"},
}

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "path to the ingredients JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	for _, tag := range defaultTags {
		if err := db.Where(models.Tag{Slug: tag.Slug}).FirstOrCreate(&tag).Error; err != nil {
			log.Fatalf("Failed to seed tag %q: %v", tag.Slug, err)
		}
	}
	log.Printf("Seeded %d tags", len(defaultTags))

	data, err := os.ReadFile(*ingredientsPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *ingredientsPath, err)
	}

	var ingredients []models.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		log.Fatalf("Failed to parse ingredients file: %v", err)
	}

	seeded := 0
	for _, ing := range ingredients {
		if ing.Name == "" || ing.MeasurementUnit == "" {
			continue
		}
		err := db.Where(models.Ingredient{Name: ing.Name, MeasurementUnit: ing.MeasurementUnit}).
			FirstOrCreate(&ing).Error
		if err != nil {
			log.Fatalf("Failed to seed ingredient %q: %v", ing.Name, err)
		}
		seeded++
	}
	log.Printf("Seeded %d ingredients", seeded)
}
