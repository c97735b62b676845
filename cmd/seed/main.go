package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"realty/internal/config"
	"realty/internal/database"
	"realty/internal/domain/auth"
	"realty/internal/domain/content"
	"realty/internal/domain/document"
	"realty/internal/domain/image"
	"realty/internal/domain/property"
)

// Seeds a local database with demo listings and site content.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM property_images")
	db.Exec("DELETE FROM property_documents")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM page_sections")
	db.Exec("DELETE FROM pages")
	db.Exec("DELETE FROM site_services")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	adminEmail := cfg.AdminEmail
	if adminEmail == "" {
		adminEmail = "admin@realty.local"
	}
	adminPassword := cfg.AdminPassword
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := auth.SeedAdmin(ctx, db, adminEmail, adminPassword); err != nil {
		log.Fatal("admin seed failed:", err)
	}

	imageRepo := image.NewRepository(db)
	documentRepo := document.NewRepository(db)
	propertyRepo := property.NewRepository(db, imageRepo, documentRepo, cfg.UploadsDir, cfg.StaticURLBase, cfg.PublicBaseURL)

	log.Println("Creating properties...")
	listings := []property.CreateInput{
		{
			Title:           "Two-bedroom apartment with park view",
			Description:     "Bright apartment on a quiet street, renovated in 2022.",
			Price:           185000,
			Currency:        "EUR",
			TransactionType: "sale",
			PropertyType:    "apartment",
			CityRegion:      "Sofia",
			District:        "Lozenets",
			Area:            86,
			Bedrooms:        2,
			Bathrooms:       1,
			FloorNumber:     4,
			Floors:          6,
			YearBuilt:       2009,
			HasElevator:     true,
			Featured:        true,
		},
		{
			Title:           "House with garden near the lake",
			Price:           320000,
			Currency:        "EUR",
			TransactionType: "sale",
			PropertyType:    "house",
			CityRegion:      "Varna",
			Area:            210,
			Bedrooms:        4,
			Bathrooms:       2,
			Floors:          2,
			HasGarage:       true,
			NewConstruction: true,
		},
		{
			Title:           "Office space in the business district",
			Price:           1450,
			Currency:        "EUR",
			TransactionType: "rent",
			PropertyType:    "office",
			CityRegion:      "Sofia",
			District:        "Business Park",
			Area:            120,
		},
	}
	for _, in := range listings {
		if _, err := propertyRepo.Create(ctx, in); err != nil {
			log.Fatal("property seed failed:", err)
		}
	}

	log.Println("Creating site content...")
	contentRepo := content.NewRepository(db)

	about := &content.Page{
		ID:      uuid.New().String(),
		Slug:    "about",
		Title:   "About us",
		Content: "Family-run agency since 2004.",
		Active:  true,
	}
	if err := contentRepo.CreatePage(ctx, about); err != nil {
		log.Fatal("page seed failed:", err)
	}
	sections := []content.Section{
		{ID: uuid.New().String(), PageID: about.ID, Key: "team", Title: "Our team", Body: "Six brokers, two offices.", SortOrder: 1},
		{ID: uuid.New().String(), PageID: about.ID, Key: "history", Title: "History", Body: "Twenty years on the local market.", SortOrder: 2},
	}
	for i := range sections {
		if err := contentRepo.CreateSection(ctx, &sections[i]); err != nil {
			log.Fatal("section seed failed:", err)
		}
	}

	services := []content.SiteService{
		{ID: uuid.New().String(), Title: "Property valuation", SortOrder: 1, Active: true},
		{ID: uuid.New().String(), Title: "Rental management", SortOrder: 2, Active: true},
		{ID: uuid.New().String(), Title: "Legal assistance", SortOrder: 3, Active: true},
	}
	for i := range services {
		if err := contentRepo.CreateService(ctx, &services[i]); err != nil {
			log.Fatal("service seed failed:", err)
		}
	}

	log.Printf("Seed complete: %d properties, admin %s", len(listings), adminEmail)
}
