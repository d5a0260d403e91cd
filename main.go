package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"coffeeshop-api/auth"
	"coffeeshop-api/config"
	"coffeeshop-api/handlers"
	"coffeeshop-api/ordering"
	"coffeeshop-api/routes"
	"coffeeshop-api/seed"
	"coffeeshop-api/store"

	"github.com/gin-gonic/gin"
)

func main() {
	runSeed := flag.Bool("seed", false, "populate the database with sample data and exit")
	flag.Parse()

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	users := store.NewUserStore(db)
	catalog := store.NewCatalogStore(db)
	orders := store.NewOrderStore(db)

	if *runSeed {
		if err := seed.Run(context.Background(), users, catalog, orders); err != nil {
			log.Fatal("Seed failed: ", err)
		}
		return
	}

	authSvc := auth.NewService(users, cfg.JWTSecret, cfg.TokenTTL)
	orderingSvc := ordering.NewService(catalog, orders)
	h := handlers.New(users, catalog, orders, authSvc, orderingSvc)

	// Default middleware: logger + recovery
	r := gin.Default()

	// CORS for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Coffee Shop API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, h, authSvc)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
