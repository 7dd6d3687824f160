// Command dev-client creates a restaurant owner and an OAuth2 client for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/franciscosanchezn/gin-menu-api/internal/config"
	"github.com/franciscosanchezn/gin-menu-api/internal/database"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type demoDish struct {
	name        string
	price       string
	description string
	category    models.Category
	dietary     []models.DietaryOption
}

var demoMenu = []demoDish{
	{"Lentil Soup", "4.50", "Red lentils, cumin and lemon", models.CategorySoups, []models.DietaryOption{models.DietaryVegan}},
	{"Fattoush", "6.00", "Crisp vegetables with toasted bread", models.CategorySalads, []models.DietaryOption{models.DietaryVegetarian}},
	{"Chicken Machboos", "14.00", "Spiced rice with slow cooked chicken", models.CategoryMains, nil},
	{"Grilled Hammour", "18.50", "Gulf grouper with saffron rice", models.CategoryMains, []models.DietaryOption{models.DietaryGlutenFree}},
	{"Umm Ali", "5.50", "", models.CategoryDesserts, []models.DietaryOption{models.DietaryVegetarian}},
	{"Karak Tea", "2.00", "", models.CategoryBeverages, nil},
}

func main() {
	role := flag.String("role", "admin", "User role (admin or user)")
	seed := flag.Bool("seed", false, "Create a demo menu for the owner")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
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
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	ctx := context.Background()

	// Determine client credentials based on role
	var clientID, clientSecret string
	if *role == "user" {
		clientID = "user-client"
		clientSecret = "user-secret-123"
	} else {
		clientID = "dev-client"
		clientSecret = "dev-secret-123"
	}

	owner, err := ownerForRole(ctx, services.NewUserService(db), *role)
	if err != nil {
		log.WithError(err).WithField("role", *role).Fatal("Failed to get owner")
	}

	if err := ensureClient(ctx, db, owner, clientID, clientSecret); err != nil {
		log.WithError(err).Fatal("Failed to create client")
	}

	if *seed {
		if err := seedMenu(ctx, services.NewMenuService(db), owner.ID); err != nil {
			log.WithError(err).Fatal("Failed to seed demo menu")
		}
	}

	fmt.Printf("Client ID: %s\n", clientID)
	fmt.Printf("Client Secret: %s\n", clientSecret)
	fmt.Printf("Owner ID: %d\n", owner.ID)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://localhost:%d/oauth/token \\\n", conf.Port)
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", clientID)
	fmt.Printf("  -d 'client_secret=%s'\n", clientSecret)
	fmt.Printf("\nPublic menu: %s/menu/%d\n", conf.PublicOrigin, owner.ID)
}

// ownerForRole gets or creates the development owner with the specified role
func ownerForRole(ctx context.Context, users services.UserService, role string) (*models.User, error) {
	email := fmt.Sprintf("%s@menu.local", role)

	user, err := users.GetUserByEmail(ctx, email)
	if err == nil {
		log.WithFields(log.Fields{"email": user.Email, "id": user.ID, "role": user.Role}).Info("Found existing owner")
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		Email: email,
		Name:  fmt.Sprintf("%s Owner", role),
		Role:  role,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"email": user.Email, "id": user.ID, "role": user.Role}).Info("Created owner")
	return user, nil
}

func ensureClient(ctx context.Context, db *gorm.DB, owner *models.User, clientID, clientSecret string) error {
	clients := services.NewClientService(db)
	if _, err := clients.GetClientByID(ctx, clientID); err == nil {
		log.WithField("client_id", clientID).Info("Development client already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}

	client := &models.OAuthClient{
		ID:         clientID,
		Secret:     string(hash),
		Name:       fmt.Sprintf("Development %s Client", owner.Role),
		Domain:     "http://localhost",
		UserID:     owner.ID,
		Scopes:     models.DefaultClientScopes,
		GrantTypes: "client_credentials",
	}
	if err := clients.CreateClient(ctx, client); err != nil {
		return err
	}
	log.WithField("client_id", clientID).Info("Development client created")
	return nil
}

// seedMenu creates the demo dishes unless the owner already has a menu
func seedMenu(ctx context.Context, store services.MenuService, ownerID uint) error {
	existing, err := store.ListItems(ctx, ownerID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.WithField("items", len(existing)).Info("Owner already has a menu, skipping seed")
		return nil
	}

	for i, dish := range demoMenu {
		item := models.MenuItem{
			OwnerID:         ownerID,
			Name:            dish.name,
			Price:           decimal.NewNullDecimal(decimal.RequireFromString(dish.price)),
			Description:     dish.description,
			Category:        dish.category,
			DietaryInfo:     dish.dietary,
			GeneratedImages: []string{fmt.Sprintf("https://images.menu.local/demo/%d.png", i+1)},
		}
		if _, err := store.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("seed %q: %w", dish.name, err)
		}
	}
	log.WithField("items", len(demoMenu)).Info("Demo menu seeded")
	return nil
}
