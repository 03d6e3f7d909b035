package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// LINE Messaging API
	LineChannelSecret      string
	LineChannelAccessToken string
	LineLiffAuthURL        string

	// freee OAuth application
	FreeeClientID     string
	FreeeClientSecret string

	// Session tokens for the receipts API
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Scheduled broadcast
	BroadcastHourJST int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LINE_CHANNEL_SECRET", "")
	viper.SetDefault("LINE_CHANNEL_ACCESS_TOKEN", "")
	viper.SetDefault("LINE_LIFF_AUTH_URL", "")
	viper.SetDefault("FREEE_CLIENT_ID", "")
	viper.SetDefault("FREEE_CLIENT_SECRET", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "freee-line-notifier")
	viper.SetDefault("BROADCAST_HOUR_JST", 10)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.LineChannelSecret = viper.GetString("LINE_CHANNEL_SECRET")
	cfg.LineChannelAccessToken = viper.GetString("LINE_CHANNEL_ACCESS_TOKEN")
	cfg.LineLiffAuthURL = viper.GetString("LINE_LIFF_AUTH_URL")
	if cfg.LineChannelSecret == "" || cfg.LineChannelAccessToken == "" {
		log.Println("Warning: LINE channel credentials not set. Webhook and push delivery will fail.")
	}

	cfg.FreeeClientID = viper.GetString("FREEE_CLIENT_ID")
	cfg.FreeeClientSecret = viper.GetString("FREEE_CLIENT_SECRET")
	if cfg.FreeeClientID == "" || cfg.FreeeClientSecret == "" {
		log.Println("Warning: freee OAuth credentials not set. Accounting API calls will fail.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.BroadcastHourJST = viper.GetInt("BROADCAST_HOUR_JST")
	if cfg.BroadcastHourJST < 0 || cfg.BroadcastHourJST > 23 {
		log.Printf("Warning: Invalid value for BROADCAST_HOUR_JST (%d). Defaulting to 10.\n", cfg.BroadcastHourJST)
		cfg.BroadcastHourJST = 10
	}

	return cfg, nil
}
