package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseDSN string
	BaseURL     string

	JWTSecret       string
	JWTTTL          time.Duration
	VerificationTTL time.Duration
	BcryptCost      int

	// Stage-1 registration variant: when true, gender, date of birth and
	// phone number are required at signup instead of at profile completion.
	RequireStage1Demographics bool

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	// mail-svc only
	GmailUser        string
	GmailAppPassword string
	MailFrom         string
	MailFromName     string
	VerifyBaseURL    string
	DashboardBaseURL string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		ServerPort:  os.Getenv("SERVER_PORT"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		BaseURL:     os.Getenv("BASE_URL"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTTTL:          envHours("JWT_TTL_HOURS", 24*30),
		VerificationTTL: envHours("VERIFICATION_TTL_HOURS", 24),
		BcryptCost:      envInt("BCRYPT_COST", 10),

		RequireStage1Demographics: envBool("REQUIRE_STAGE1_DEMOGRAPHICS", false),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaGroupID:  os.Getenv("KAFKA_GROUP_ID"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		GmailUser:        os.Getenv("GMAIL_USER"),
		GmailAppPassword: os.Getenv("GMAIL_APP_PASSWORD"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		MailFromName:     os.Getenv("MAIL_FROM_NAME"),
		VerifyBaseURL:    os.Getenv("VERIFY_BASE_URL"),
		DashboardBaseURL: os.Getenv("DASHBOARD_BASE_URL"),
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

func envHours(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Hour
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a bool, using %v", key, v, def)
		return def
	}
	return b
}
