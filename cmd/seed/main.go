package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"snapwall/internal/config"
	"snapwall/internal/database"
	"snapwall/internal/domain"
	"snapwall/internal/modules/upload"
	"snapwall/internal/storage"
)

// A 1x1 transparent PNG, enough of a real blob for local demos.
const demoPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&upload.Upload{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM uploads")

	content, err := base64.StdEncoding.DecodeString(demoPNG)
	if err != nil {
		log.Fatal(err)
	}

	owners := []domain.User{
		{ID: 101, Username: "ada", Name: "Ada Lovelace"},
		{ID: 102, Username: "grace", Name: "Grace Hopper"},
		{ID: 103, Username: "linus", Name: "Linus T."},
	}

	for i, owner := range owners {
		key, err := store.Save(content, fmt.Sprintf("demo-%d.png", i))
		if err != nil {
			log.Fatal(err)
		}

		u := &upload.Upload{
			ID:                         uuid.New().String(),
			OwnerID:                    owner.ID,
			Owner:                      owner,
			Attachments:                []string{key},
			Published:                  true,
			AllowAdditionalAttachments: false,
			Timestamp:                  time.Now().UTC().Add(-time.Duration(i) * time.Hour),
		}
		if err := db.Create(u).Error; err != nil {
			log.Fatal("seeding upload failed:", err)
		}
		log.Printf("seeded upload %s for %s", u.ID, owner.Username)
	}

	log.Println("Done.")
}
