// Command placeholder-audit reports menu items that still reference placeholder images
// and optionally removes those references.
package main

import (
	"context"
	"flag"

	"github.com/franciscosanchezn/gin-menu-api/internal/config"
	"github.com/franciscosanchezn/gin-menu-api/internal/database"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	fix := flag.Bool("fix", false, "Remove placeholder image references from the affected items")
	flag.Parse()

	log.SetFormatter(&log.JSONFormatter{})
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}

	conf, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	db, err := database.InitDatabase(database.FromConfig(conf))
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	ctx := context.Background()
	store := services.NewMenuService(db)

	items, err := store.FindPlaceholderImages(ctx)
	if err != nil {
		log.WithError(err).Fatal("Audit failed")
	}

	affectedOwners := make(map[uint]bool)
	for _, item := range items {
		affectedOwners[item.OwnerID] = true
		entry := log.WithFields(log.Fields{
			"owner_id": item.OwnerID,
			"item_id":  item.ID,
			"name":     item.Name,
			"urls":     services.PlaceholderURLs(item),
		})
		if !*fix {
			entry.Warn("Item references placeholder images")
			continue
		}

		updated, err := store.StripPlaceholderImages(ctx, item)
		if err != nil {
			entry.WithError(err).Error("Could not strip placeholder images")
			continue
		}
		entry.WithField("remaining_images", len(updated.GeneratedImages)).Info("Placeholder images removed")
	}

	log.WithFields(log.Fields{
		"items":  len(items),
		"owners": len(affectedOwners),
		"fixed":  *fix,
	}).Info("Placeholder audit finished")
}
