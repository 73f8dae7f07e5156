package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jotpad/jotpad/internal/database"
	"github.com/jotpad/jotpad/internal/note/handler"
	"github.com/jotpad/jotpad/internal/note/repository"
	"github.com/jotpad/jotpad/internal/note/service"
)

// notesd is a stripped-down note service for local development: no metrics,
// no rate limiting, no write gate. Prefer the root binary for deployments.
func main() {
	port := os.Getenv("NOTES_PORT")
	if port == "" {
		port = "5021"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	var repo repository.Repository
	if mongoURI := os.Getenv("MONGODB_URI"); mongoURI != "" {
		client, err := database.ConnectMongo(context.Background(), mongoURI, 10*time.Second)
		if err != nil {
			log.Printf("warning: cannot connect to MongoDB (%v), using in-memory repository", err)
			repo = repository.NewMemoryRepo()
		} else {
			defer client.Disconnect(context.Background())
			col := client.Database(os.Getenv("MONGODB_DATABASE")).Collection("notes")
			repo = repository.NewMongoRepo(col)
		}
	} else {
		repo = repository.NewMemoryRepo()
	}

	handler.RegisterNoteRoutes(r, service.New(repo))

	log.Printf("notesd listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
