package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"realty/internal/config"
	"realty/internal/database"
	"realty/internal/domain/auth"
	"realty/internal/domain/content"
	"realty/internal/domain/document"
	"realty/internal/domain/image"
	"realty/internal/domain/property"
	"realty/internal/middleware"
	jwtsvc "realty/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	if err := auth.SeedAdmin(context.Background(), db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	imageRepo := image.NewRepository(db)
	documentRepo := document.NewRepository(db)
	propertyRepo := property.NewRepository(db, imageRepo, documentRepo, cfg.UploadsDir, cfg.StaticURLBase, cfg.PublicBaseURL)
	contentRepo := content.NewRepository(db)

	imageService := image.NewService(imageRepo, propertyRepo, cfg.UploadsDir, cfg.StaticURLBase)
	documentService := document.NewService(documentRepo, propertyRepo, cfg.UploadsDir, cfg.StaticURLBase)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(db, j)
	propertyHandler := property.NewHandler(propertyRepo)
	imageHandler := image.NewHandler(imageService)
	documentHandler := document.NewHandler(documentService)
	contentHandler := content.NewHandler(contentRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Static(cfg.StaticURLBase, cfg.UploadsDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "ok"}})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())

		propertyHandler.RegisterRoutes(v1, admin)
		imageHandler.RegisterRoutes(admin)
		documentHandler.RegisterRoutes(v1, admin)
		contentHandler.RegisterRoutes(v1, admin)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
