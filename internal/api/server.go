package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/askfield/user_service/config"
	"github.com/askfield/user_service/infra/queue"
	"github.com/askfield/user_service/internal/api/rest/handlers"
	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/helper"
	"github.com/askfield/user_service/internal/repository"
	"github.com/askfield/user_service/internal/services"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost)

	// ---------- Repository / Service / Handler ----------
	userRepo := repository.NewUserRepository(db, authHelper)
	userSvc := services.NewUserService(
		userRepo,
		kafkaProducer,
		authHelper,
		cfg.VerificationTTL,
		cfg.RequireStage1Demographics,
	)

	authHandler := handlers.NewAuthHandler(userSvc, authHelper)
	authHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	log.Println("listening on", cfg.ServerPort)
	log.Fatal(app.Listen(cfg.ServerPort))
}
