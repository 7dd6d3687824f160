package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-menu-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-menu-api/internal/auth"
	"github.com/franciscosanchezn/gin-menu-api/internal/config"
	"github.com/franciscosanchezn/gin-menu-api/internal/controllers"
	"github.com/franciscosanchezn/gin-menu-api/internal/database"
	"github.com/franciscosanchezn/gin-menu-api/internal/export"
	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/middleware"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/franciscosanchezn/gin-menu-api/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var configuration *config.Config

// @title Menu API
// @version 1.0
// @description Restaurant menu management: grouped menus, drag and drop ordering, QR and PDF exports
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()
	applyLogLevel(configuration.LogLevel)

	// Initialize database connection
	db := setupDatabase(configuration)

	// Initialize services and controllers
	store := services.NewMenuService(db)
	users := services.NewUserService(db)
	dashboard := services.NewDashboardService(store, users, configuration.MenuCacheTTL)

	oauthService := auth.NewOAuthService(db, configuration.JWTSecret)
	if err := oauthService.PurgeExpiredTokens(context.Background()); err != nil {
		log.WithError(err).Warn("Could not purge expired access tokens")
	}

	menuController := controllers.NewMenuController(store, dashboard)
	exportController := controllers.NewExportController(
		dashboard,
		export.NewQRGenerator(configuration.PublicOrigin),
		export.NewPDFRenderer(),
		setupPublisher(configuration),
	)
	clientController := controllers.NewClientController(services.NewClientService(db))
	adminController := controllers.NewAdminController(store)

	// Initialize Gin router
	router := setupRouter(oauthService, menuController, exportController, clientController, adminController)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	if err := router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// applyLogLevel overrides the environment default of every package logger when LOG_LEVEL is a valid logrus level
func applyLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("log_level", level).Warn("Unknown log level, keeping environment default")
		return
	}
	log.SetLevel(parsed)
	for _, setLevel := range []func(log.Level){
		auth.SetLogLevel,
		controllers.SetLogLevel,
		database.SetLogLevel,
		export.SetLogLevel,
		menu.SetLogLevel,
		services.SetLogLevel,
		storage.SetLogLevel,
	} {
		setLevel(parsed)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// setupDatabase opens the configured database and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(database.FromConfig(conf))
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// setupPublisher returns nil when no export bucket is configured
func setupPublisher(conf *config.Config) storage.Publisher {
	if !conf.PublishingEnabled() {
		log.Info("Export bucket not configured, publishing disabled")
		return nil
	}

	publisher, err := storage.NewS3Publisher(context.Background(), storage.Options{
		Bucket:        conf.ExportBucket,
		Region:        conf.ExportRegion,
		Endpoint:      conf.ExportEndpoint,
		AccessKey:     conf.ExportAccessKey,
		SecretKey:     conf.ExportSecretKey,
		PublicBaseURL: conf.ExportPublicBaseURL,
	})
	checkPanicErr(err)
	return publisher
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(
	oauthService *auth.OAuthService,
	menuController controllers.MenuController,
	exportController controllers.ExportController,
	clientController *controllers.ClientController,
	adminController *controllers.AdminController,
) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = configuration.CORSOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// OAuth2 token endpoint
	router.POST("/oauth/token", oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/menus/:userId", menuController.GetPublicMenu)
		}

		// Protected routes act on the menu of the token's owner
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.OAuth2Auth([]byte(configuration.JWTSecret)))
		{
			readApi := protectedApi.Group("", middleware.RequireScope(models.ScopeMenuRead))
			{
				readApi.GET("/items", menuController.ListItems)
				readApi.GET("/items/:id", menuController.GetItem)
				readApi.GET("/menu", menuController.GetMenu)
				readApi.GET("/usage", menuController.GetUsage)
				readApi.GET("/export/qr", exportController.ExportQR)
				readApi.GET("/export/pdf", exportController.ExportPDF)
				readApi.GET("/clients", clientController.ListClients)
			}

			writeApi := protectedApi.Group("", middleware.RequireScope(models.ScopeMenuWrite))
			{
				writeApi.POST("/items", menuController.CreateItem)
				writeApi.PATCH("/items/:id", menuController.UpdateItem)
				writeApi.DELETE("/items/:id", menuController.DeleteItem)
				writeApi.POST("/menu/categories/:category/reorder", menuController.ReorderCategory)
				writeApi.POST("/export/publish", exportController.PublishExports)
				writeApi.POST("/clients", clientController.CreateClient)
				writeApi.DELETE("/clients/:id", clientController.DeleteClient)
			}

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.GET("/placeholders", adminController.AuditPlaceholders)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-menu-api",
	})
}
